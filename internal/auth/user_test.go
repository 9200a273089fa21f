package auth

import (
	"path/filepath"
	"testing"

	"perfoverlay/internal/conf"
)

func TestNewUserAndVerify(t *testing.T) {
	saved, savedPath := conf.Conf, conf.Path
	t.Cleanup(func() { conf.Conf, conf.Path = saved, savedPath })
	conf.Conf = conf.Default()
	conf.Path = filepath.Join(t.TempDir(), "config.toml")

	if err := NewUser("viewer", "s3cret"); err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if !VerifyPassword("viewer", "s3cret") {
		t.Error("VerifyPassword rejected the right password")
	}
	if VerifyPassword("viewer", "wrong") {
		t.Error("VerifyPassword accepted a wrong password")
	}
	if VerifyPassword("nobody", "s3cret") {
		t.Error("VerifyPassword accepted an unknown user")
	}

	conf.Conf = conf.Default()
	if err := conf.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !VerifyPassword("viewer", "s3cret") {
		t.Error("user not persisted to the config file")
	}
}

func TestNewUserRequiresCredentials(t *testing.T) {
	if err := NewUser("", "x"); err == nil {
		t.Error("NewUser accepted an empty name")
	}
}
