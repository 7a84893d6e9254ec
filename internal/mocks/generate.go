package mocks

//go:generate mockery --name ActivityWriter --srcpkg github.com/aevon-lab/merchant-pulse/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name AnalyticsReader --srcpkg github.com/aevon-lab/merchant-pulse/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
