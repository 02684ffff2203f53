package main

import "time"

// Config 配置文件里可以直接给 dsn，也可以分字段写，
// dsn 优先
type Config struct {
	DSN string `yaml:"dsn"`

	Addr     string        `yaml:"addr"`
	User     string        `yaml:"user"`
	Password string        `yaml:"password"`
	DBName   string        `yaml:"dbName"`
	Charset  string        `yaml:"charset"`
	Timeout  time.Duration `yaml:"timeout"`
	Compress bool          `yaml:"compress"`
}
