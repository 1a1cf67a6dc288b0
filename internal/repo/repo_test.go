package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_withSSLMode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "user=postgres dbname=bolted", want: "user=postgres dbname=bolted sslmode=require"},
		{in: "user=postgres sslmode=disable", want: "user=postgres sslmode=disable"},
		{in: "postgres://db.local/bolted", want: "postgres://db.local/bolted?sslmode=require"},
		{in: "postgresql://db.local/bolted?connect_timeout=5", want: "postgresql://db.local/bolted?connect_timeout=5&sslmode=require"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, withSSLMode(tt.in))
	}
}

func Test_SchemaIsEmbedded(t *testing.T) {
	for _, table := range []string{"users", "bolt_sizes", "bolt_threads", "materials", "clearance_holes"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
