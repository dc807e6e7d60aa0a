package service

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"blogapi/app/config"
	"blogapi/app/models"
	"blogapi/app/repositories"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB points the badger settings at a temporary directory.
func setupTestDB(t *testing.T) (dbPath, backupDir string) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath = filepath.Join(tmpDir, "badger")
	backupDir = filepath.Join(tmpDir, "backups")
	t.Setenv("BLOG_STORE", config.StoreBadger)
	t.Setenv("BLOG_BADGER_PATH", dbPath)
	t.Setenv("BLOG_BACKUP_DIR", backupDir)
	return dbPath, backupDir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "blogapi version "+Version+"\n", out)
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "", "frobnicate")
	assert.Error(t, err)
}

func TestInitAndClean(t *testing.T) {
	dbPath, _ := setupTestDB(t)

	out, err := run(t, "", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Database is already clean")

	out, err = run(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized successfully")
	assert.DirExists(t, dbPath)

	_, err = run(t, "", "init")
	assert.ErrorContains(t, err, "database already exists")

	out, err = run(t, "n\n", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")
	assert.DirExists(t, dbPath)

	out, err = run(t, "y\n", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Database cleaned successfully")
	assert.NoDirExists(t, dbPath)
}

func TestCleanWithYesFlag(t *testing.T) {
	dbPath, _ := setupTestDB(t)
	_, err := run(t, "", "init")
	require.NoError(t, err)

	_, err = run(t, "", "clean", "--yes")
	require.NoError(t, err)
	assert.NoDirExists(t, dbPath)
}

func TestBadgerCommandsRejectOtherStores(t *testing.T) {
	t.Setenv("BLOG_STORE", config.StoreMemory)

	for _, args := range [][]string{{"clean"}, {"backup"}, {"restore", "x.db"}} {
		_, err := run(t, "", args...)
		assert.ErrorContains(t, err, "only works with the badger store", args[0])
	}

	_, err := run(t, "", "init")
	assert.ErrorContains(t, err, "nothing to initialize")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("BLOG_STORE", "cassandra")
	_, err := run(t, "", "init")
	assert.ErrorContains(t, err, "loading config")
}

func TestBackupAndRestore(t *testing.T) {
	dbPath, backupDir := setupTestDB(t)
	ctx := context.Background()

	_, err := run(t, "", "backup")
	assert.ErrorContains(t, err, "no database exists")

	store, err := repositories.NewBadgerStore(dbPath)
	require.NoError(t, err)
	post := &models.Post{Title: "Kept", Description: "Survives a restore", Content: "Content"}
	require.NoError(t, store.Posts().Create(ctx, post))
	comment := &models.Comment{PostID: post.ID, Name: "Ada", Email: "ada@example.com", Body: "Also survives"}
	require.NoError(t, store.Comments().Create(ctx, comment))
	require.NoError(t, store.Close())

	out, err := run(t, "", "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "Database backed up successfully")

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	backupFile := filepath.Join(backupDir, entries[0].Name())

	out, err = run(t, "n\n", "restore", backupFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")

	_, err = run(t, "", "clean", "--yes")
	require.NoError(t, err)

	out, err = run(t, "", "restore", backupFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Database restored successfully")

	store, err = repositories.NewBadgerStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Title)

	comments, err := store.Comments().ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Also survives", comments[0].Body)
}

func TestRestoreErrors(t *testing.T) {
	setupTestDB(t)

	_, err := run(t, "", "restore", filepath.Join(t.TempDir(), "nope.db"))
	assert.ErrorContains(t, err, "backup file does not exist")

	empty := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = run(t, "", "restore", empty)
	assert.ErrorContains(t, err, "backup file is empty")

	_, err = run(t, "", "restore")
	assert.Error(t, err)
}

func TestServeGracefulShutdown(t *testing.T) {
	log, hook := test.NewNullLogger()
	s, err := openStore(config.Config{Store: config.StoreMemory}, log)
	require.NoError(t, err)
	defer s.close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, newServer(newHandler(s, log)), ln, log)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, "shutting down", hook.LastEntry().Message)
}

func TestRunAppServerBadAddress(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := config.Config{Store: config.StoreMemory, Addr: "not-an-address"}
	err := RunAppServer(context.Background(), cfg, log)
	assert.ErrorContains(t, err, "failed to listen")
}
