package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// 调用维护接口（刷新统计）时需要携带的口令
	AdminToken string `json:"admin_token" yaml:"admin_token"`
}
