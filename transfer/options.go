package transfer

import "time"

//go:generate genopts --prefix=Export --outfile=transfer/exportoptions.go "pageSize:int" "pagePause:time.Duration" "order:string"

type ExportOption func(*exportOptionImpl)

type ExportOptions interface {
	PageSize() int
	PagePause() time.Duration
	Order() string
}

func ExportPageSize(pageSize int) ExportOption {
	return func(opts *exportOptionImpl) {
		opts.pageSize = pageSize
	}
}

func ExportPagePause(pagePause time.Duration) ExportOption {
	return func(opts *exportOptionImpl) {
		opts.pagePause = pagePause
	}
}

func ExportOrder(order string) ExportOption {
	return func(opts *exportOptionImpl) {
		opts.order = order
	}
}

type exportOptionImpl struct {
	pageSize  int
	pagePause time.Duration
	order     string
}

func (e *exportOptionImpl) PageSize() int            { return e.pageSize }
func (e *exportOptionImpl) PagePause() time.Duration { return e.pagePause }
func (e *exportOptionImpl) Order() string            { return e.order }

func makeExportOptionImpl(opts ...ExportOption) *exportOptionImpl {
	res := &exportOptionImpl{}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func MakeExportOptions(opts ...ExportOption) ExportOptions {
	return makeExportOptionImpl(opts...)
}

//go:generate genopts --prefix=Replay --outfile=transfer/replayoptions.go "pause:time.Duration" "retries:int" "retryPause:time.Duration" "checkRelation"

type ReplayOption func(*replayOptionImpl)

type ReplayOptions interface {
	Pause() time.Duration
	Retries() int
	RetryPause() time.Duration
	CheckRelation() bool
}

func ReplayPause(pause time.Duration) ReplayOption {
	return func(opts *replayOptionImpl) {
		opts.pause = pause
	}
}

func ReplayRetries(retries int) ReplayOption {
	return func(opts *replayOptionImpl) {
		opts.retries = retries
	}
}

func ReplayRetryPause(retryPause time.Duration) ReplayOption {
	return func(opts *replayOptionImpl) {
		opts.retryPause = retryPause
	}
}

func ReplayCheckRelation(checkRelation bool) ReplayOption {
	return func(opts *replayOptionImpl) {
		opts.checkRelation = checkRelation
	}
}

type replayOptionImpl struct {
	pause         time.Duration
	retries       int
	retryPause    time.Duration
	checkRelation bool
}

func (r *replayOptionImpl) Pause() time.Duration      { return r.pause }
func (r *replayOptionImpl) Retries() int              { return r.retries }
func (r *replayOptionImpl) RetryPause() time.Duration { return r.retryPause }
func (r *replayOptionImpl) CheckRelation() bool       { return r.checkRelation }

func makeReplayOptionImpl(opts ...ReplayOption) *replayOptionImpl {
	res := &replayOptionImpl{}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func MakeReplayOptions(opts ...ReplayOption) ReplayOptions {
	return makeReplayOptionImpl(opts...)
}
