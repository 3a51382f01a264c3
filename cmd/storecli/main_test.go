package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCmd_RequiresThreeArgs(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"shop", "5432"})
	if code := execute(cmd, &out); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "storecli <dbname> <port> <username>") {
		t.Fatalf("usage not printed:\n%s", out.String())
	}
	if n := strings.Count(out.String(), "accepts 3 arg(s)"); n != 1 {
		t.Fatalf("argument error printed %d times:\n%s", n, out.String())
	}
}

func TestRun_SQLiteSession(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "shop.db"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader("1\nalice\npw1\n10\n10\n9\n"), &out)
	cmd.SetArgs([]string{"shop", "5432", "clerk"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v\n%s", err, out.String())
	}
	for _, want := range []string{"Welcome to the Amazon WareHouse", "User successfully created!", "Disconnecting from database...Done", "Bye !"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_ConnectionFailure(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "missing", "dir", "shop.db"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"shop", "5432", "clerk"})
	if code := execute(cmd, &out); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if n := strings.Count(out.String(), "Unable to Connect to Database"); n != 1 {
		t.Fatalf("connection error printed %d times:\n%s", n, out.String())
	}
	if strings.Contains(out.String(), "Error: ") {
		t.Fatalf("connection error repeated by the command:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Bye !") {
		t.Fatalf("farewell printed without a connection:\n%s", out.String())
	}
}
