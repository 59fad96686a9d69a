package db

// MongoConfig is the resolved connection setting of one logical database.
type MongoConfig struct {
	URI     string
	AppName string
	// DBName overrides the default database name of a store. DBNamePrefix is prepended to either.
	DBName           string
	DBNamePrefix     string
	Timeout          int
	NoCursorTimeout  bool
	MaxPoolSize      uint64
	IdleConnTimeout  int
	RunIndexCreation bool
}

// DatabaseName returns the prefixed database name, falling back to defaultName.
func (c MongoConfig) DatabaseName(defaultName string) string {
	name := c.DBName
	if name == "" {
		name = defaultName
	}
	return c.DBNamePrefix + name
}

// MongoConfigYaml is one entry of the db_configs section. Credentials are usually
// injected from the environment.
type MongoConfigYaml struct {
	ConnectionStr      string `yaml:"connection_str"`
	ConnectionPrefix   string `yaml:"connection_prefix"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	AppName            string `yaml:"app_name"`
	DBName             string `yaml:"db_name"`
	DBNamePrefix       string `yaml:"db_name_prefix"`
	Timeout            int    `yaml:"timeout"`
	IdleConnTimeout    int    `yaml:"idle_conn_timeout"`
	MaxPoolSize        int    `yaml:"max_pool_size"`
	UseNoCursorTimeout bool   `yaml:"use_no_cursor_timeout"`
	RunIndexCreation   bool   `yaml:"run_index_creation"`
}
