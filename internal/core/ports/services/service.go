package services

// ServiceContainer bundles the service facades handed to the handler layer.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Directory  DirectorySvcFacade
	Posting    PostingSvcFacade
	Stock      StockSvcFacade
	Reconciler ReconcilerSvcFacade
}
