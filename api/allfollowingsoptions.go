package api

import "time"

// genopts --opt_type=AllFollowingsOption --prefix=AllFollowings --outfile=api/allfollowingsoptions.go 'pageSize:int' 'start:int' 'order:string' 'pause:time.Duration'

type AllFollowingsOption func(*allFollowingsOptionImpl)

type AllFollowingsOptions interface {
	PageSize() int
	Start() int
	Order() string
	Pause() time.Duration
}

func AllFollowingsPageSize(pageSize int) AllFollowingsOption {
	return func(opts *allFollowingsOptionImpl) {
		opts.pageSize = pageSize
	}
}

func AllFollowingsStart(start int) AllFollowingsOption {
	return func(opts *allFollowingsOptionImpl) {
		opts.start = start
	}
}

func AllFollowingsOrder(order string) AllFollowingsOption {
	return func(opts *allFollowingsOptionImpl) {
		opts.order = order
	}
}

func AllFollowingsPause(pause time.Duration) AllFollowingsOption {
	return func(opts *allFollowingsOptionImpl) {
		opts.pause = pause
	}
}

type allFollowingsOptionImpl struct {
	pageSize int
	start    int
	order    string
	pause    time.Duration
}

func (a *allFollowingsOptionImpl) PageSize() int        { return a.pageSize }
func (a *allFollowingsOptionImpl) Start() int           { return a.start }
func (a *allFollowingsOptionImpl) Order() string        { return a.order }
func (a *allFollowingsOptionImpl) Pause() time.Duration { return a.pause }

func makeAllFollowingsOptionImpl(opts ...AllFollowingsOption) *allFollowingsOptionImpl {
	res := &allFollowingsOptionImpl{}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func MakeAllFollowingsOptions(opts ...AllFollowingsOption) AllFollowingsOptions {
	return makeAllFollowingsOptionImpl(opts...)
}
