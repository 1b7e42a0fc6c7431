package config

import "time"

// SyncSettings is the typed view of the keys that drive the employee sync store.
type SyncSettings struct {
	BaseURL          string
	FetchEndpoint    string
	DeleteEndpoint   string
	RegisterEndpoint string
	MaxRetries       int
	RetryDelay       time.Duration
	RequestTimeout   time.Duration
	RefreshInterval  time.Duration
	SearchDebounce   time.Duration
	ClientsFile      string
	TableFormat      string
}

// Sync returns the sync settings from the loaded configuration.
func Sync() SyncSettings {
	return SyncSettings{
		BaseURL:          Get("base_url", "https://www.fist-o.com/web_crm/"),
		FetchEndpoint:    Get("fetch_endpoint", "fetch_employees.php"),
		DeleteEndpoint:   Get("delete_endpoint", "delete_employee.php"),
		RegisterEndpoint: Get("register_endpoint", "registration.php"),
		MaxRetries:       GetInt("max_retries", 3),
		RetryDelay:       millis(GetInt("retry_delay_ms", 1000)),
		RequestTimeout:   millis(GetInt("request_timeout_ms", 10000)),
		RefreshInterval:  millis(GetInt("refresh_interval_ms", 60000)),
		SearchDebounce:   millis(GetInt("search_debounce_ms", 500)),
		ClientsFile:      Get("clients_file", ""),
		TableFormat:      Get("table_format", "table"),
	}
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
