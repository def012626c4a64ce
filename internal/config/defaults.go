package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# verlog configuration
# Environment variables override these values: VERLOG_SOURCE, VERLOG_MAX_PARALLEL, ...

# Data settings
source: .                             # http(s) base URL or local directory
index_file: versions-index.json       # Manifest path relative to source
versions_dir: versions                # Version files directory relative to source
max_parallel: 0                       # Concurrent version fetches (0 = unbounded)
timeout: 5                            # HTTP timeout in seconds (0 = none)

# Page settings
page: ""                              # Host page file (empty = built-in page)
container_id: changelog-container     # Element id the versions are rendered into
output: ""                            # Output file for 'verlog render' (empty = stdout)
raw_html: false                       # Insert text without HTML escaping (trusted data only)

# Server settings
listen_addr: ":8080"                  # Address for 'verlog serve'

# Logging
log_level: info                       # debug | info | warn | error
log_format: text                      # text | json
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"source":       ".",
		"index_file":   "versions-index.json",
		"versions_dir": "versions",
		"max_parallel": 0, // unbounded, every file is fetched at once
		"timeout":      5,
		"page":         "",
		"container_id": "changelog-container",
		"output":       "",
		"raw_html":     false, // escape fetched text unless the data is trusted
		"listen_addr":  ":8080",
		"log_level":    "info",
		"log_format":   "text",
	}
}
