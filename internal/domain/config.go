package domain

type Config struct {
	Offset         float64 `mapstructure:"offset"`
	PollIntervalMs int     `mapstructure:"pollIntervalMs"`
	Backend        string  `mapstructure:"backend"`
	Volume         float64 `mapstructure:"volume"`
	TailSeconds    int     `mapstructure:"tailSeconds"`
	Plain          bool    `mapstructure:"plain"`
}
