package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	RateTables RateTableSource
	LiveRates  RateProvider
	// Imports is nil when rates are read from CSV files.
	Imports RateImportRepositoryFacade
}
