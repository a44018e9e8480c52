package config

type config struct {
	Api   api   `yaml:"api" mapstructure:"api"`
	Redis redis `yaml:"redis" mapstructure:"redis"`
	Log   log   `yaml:"log" mapstructure:"log"`
}

type api struct {
	BaseUrl   string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms" mapstructure:"timeout_ms"`
	PageSize  int    `yaml:"page_size" mapstructure:"page_size"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

type log struct {
	Level string `yaml:"level"`
}
