package model

// Config holds the application configuration settings.
type Config struct {
	DatabaseDir       string  `json:"database_dir"`
	DatabaseFile      string  `json:"database_file"`
	DatabaseType      string  `json:"database_type"`
	LogFolder         string  `json:"log_folder"`
	CommandLog        string  `json:"command_log"`
	ErrorLog          string  `json:"error_log"`
	InfoLog           string  `json:"info_log"`
	ReadlineHistory   string  `json:"readline_history"`
	HistoryDepth      int     `json:"history_depth"`
	AutosaveSeconds   int     `json:"autosave_seconds"`
	DefaultDocument   string  `json:"default_document"`
	DefaultNodeWidth  float64 `json:"default_node_width"`
	DefaultNodeHeight float64 `json:"default_node_height"`
}
