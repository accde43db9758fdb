package services

// ServiceContainer holds the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account    AccountSvcFacade
	FiscalYear FiscalYearSvcFacade
	Template   TemplateSvcFacade
	Posting    PostingSvcFacade
}
