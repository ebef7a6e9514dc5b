package config

var defaults = map[string]any{
	"secret":    "",
	"log_level": "info",
	"listen":    ":8080",
	"base_url":  "",

	"allowed_networks": "",

	"session.ttl":        0,
	"session.revalidate": false,

	"session.revocation_store": "memory",

	"auth.password_hashing": false,

	"access.policy_file": "",

	"pass.ttl": 24,

	"email.host":     "",
	"email.port":     25,
	"email.username": "",
	"email.password": "",
	"email.from":     "noreply@example.com",
	"email.notify":   "",

	"storage.type":          "file",
	"storage.file.dir":      "./instance/data",
	"storage.sqlite.path":   "./instance/console.db",
	"storage.postgres.dsn":  "",
	"storage.badger.dir":    "./instance/badger",
	"storage.redis.addr":    "localhost:6379",
	"storage.redis.prefix":  "console:",
	"storage.s3.bucket":     "",
	"storage.s3.prefix":     "console/",
	"storage.s3.region":     "us-east-1",
	"storage.s3.endpoint":   "",
	"storage.s3.access_key": "",
	"storage.s3.secret_key": "",
}

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}
