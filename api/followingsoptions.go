package api

//go:generate genopts --prefix=Followings --outfile=api/followingsoptions.go "page:int" "pageSize:int" "order:string"

type FollowingsOption func(*followingsOptionImpl)

type FollowingsOptions interface {
	Page() int
	PageSize() int
	Order() string
}

func FollowingsPage(page int) FollowingsOption {
	return func(opts *followingsOptionImpl) {
		opts.page = page
	}
}
func FollowingsPageFlag(page *int) FollowingsOption {
	return func(opts *followingsOptionImpl) {
		opts.page = *page
	}
}

func FollowingsPageSize(pageSize int) FollowingsOption {
	return func(opts *followingsOptionImpl) {
		opts.pageSize = pageSize
	}
}
func FollowingsPageSizeFlag(pageSize *int) FollowingsOption {
	return func(opts *followingsOptionImpl) {
		opts.pageSize = *pageSize
	}
}

func FollowingsOrder(order string) FollowingsOption {
	return func(opts *followingsOptionImpl) {
		opts.order = order
	}
}
func FollowingsOrderFlag(order *string) FollowingsOption {
	return func(opts *followingsOptionImpl) {
		opts.order = *order
	}
}

type followingsOptionImpl struct {
	page     int
	pageSize int
	order    string
}

func (f *followingsOptionImpl) Page() int     { return f.page }
func (f *followingsOptionImpl) PageSize() int { return f.pageSize }
func (f *followingsOptionImpl) Order() string { return f.order }

func makeFollowingsOptionImpl(opts ...FollowingsOption) *followingsOptionImpl {
	res := &followingsOptionImpl{}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func MakeFollowingsOptions(opts ...FollowingsOption) FollowingsOptions {
	return makeFollowingsOptionImpl(opts...)
}
