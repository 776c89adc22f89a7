package config

const (
	defaultCatalogFile        = "~/.local/share/pipoca/catalog.json"
	defaultAssetsDir          = "~/.local/share/pipoca/assets"
	defaultStateDir           = "~/.local/share/pipoca"
	defaultLogDir             = "~/.local/share/pipoca/logs"
	defaultLibraryDir         = "~/movies"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL   = "https://image.tmdb.org/t/p"
	defaultTMDBLanguage       = "pt-BR"
	defaultTMDBTimeoutSeconds = 10
	defaultMinDurationMinutes = 60
	defaultMatchMinScore      = 0.5
	defaultMatchYearBonus     = 0.2
	defaultNotifyTimeout      = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogFile: defaultCatalogFile,
			AssetsDir:   defaultAssetsDir,
			StateDir:    defaultStateDir,
			LogDir:      defaultLogDir,
			LibraryDir:  defaultLibraryDir,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			ImageBaseURL:   defaultTMDBImageBaseURL,
			Language:       defaultTMDBLanguage,
			RequestTimeout: defaultTMDBTimeoutSeconds,
		},
		Scan: Scan{
			MinDurationMinutes: defaultMinDurationMinutes,
			RequireDuration:    false,
			SkipDuplicates:     true,
		},
		Match: Match{
			MinScore:  defaultMatchMinScore,
			YearBonus: defaultMatchYearBonus,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			BatchComplete:  true,
			Prune:          true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
