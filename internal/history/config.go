package history

type Config struct {
	File string `yaml:"file"`
}
