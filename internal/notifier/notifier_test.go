package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/tLat87/SportJournal/internal/constants"
	"github.com/tLat87/SportJournal/internal/models"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubProcess(t *testing.T, fn func(int) (ps.Process, error)) {
	t.Helper()
	old := findProcessFunc
	findProcessFunc = fn
	t.Cleanup(func() { findProcessFunc = old })
}

func stubConfigDir(t *testing.T, dir string) {
	t.Helper()
	old := userConfigDirFunc
	userConfigDirFunc = func() (string, error) { return dir, nil }
	t.Cleanup(func() { userConfigDirFunc = old })
}

func TestTrayConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	stubConfigDir(t, tempDir)

	trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := TrayConfigDir()
	if err != nil || dir != trayDir {
		t.Fatalf("TrayConfigDir() = %q, %v, want %q", dir, err, trayDir)
	}

	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	settings := `{"settings": {"lockfile_dir": "/custom/lock/dir"}}`
	if err := os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(settings), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = TrayConfigDir()
	if err != nil || dir != "/custom/lock/dir" {
		t.Errorf("TrayConfigDir() = %q, %v, want custom dir", dir, err)
	}
}

func TestReadLockfile(t *testing.T) {
	stubProcess(t, func(pid int) (ps.Process, error) {
		switch pid {
		case 1:
			return &mockProcess{pid: pid, executable: "sportjournal-tray"}, nil
		case 2:
			return &mockProcess{pid: pid, executable: "other-app"}, nil
		default:
			return nil, nil
		}
	})

	tests := []struct {
		name      string
		content   string
		wantErr   bool
		wantTray  bool
		wantPort  string
		wantToken string
	}{
		{name: "two parts", content: "8080|1", wantErr: true},
		{name: "garbage", content: "invalid", wantErr: true},
		{name: "empty secret", content: "8080|1|", wantErr: true},
		{name: "empty port", content: "|1|s3cret", wantErr: true},
		{name: "port out of range", content: "99999|1|s3cret", wantErr: true},
		{name: "bad pid", content: "8080|x|s3cret", wantErr: true},
		{name: "process gone", content: "8080|3|s3cret", wantErr: true, wantTray: true},
		{name: "wrong executable", content: "8080|2|s3cret", wantErr: true},
		{name: "ok", content: "8080|1|s3cret\n", wantPort: "8080", wantToken: "s3cret"},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, constants.NotifierLockfileName)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			port, secret, err := readLockfile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("readLockfile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantTray && !errors.Is(err, ErrTrayNotRunning) {
				t.Errorf("readLockfile() error = %v, want %v", err, ErrTrayNotRunning)
			}
			if port != tt.wantPort || secret != tt.wantToken {
				t.Errorf("readLockfile() = %q, %q, want %q, %q", port, secret, tt.wantPort, tt.wantToken)
			}
		})
	}

	if _, _, err := readLockfile(filepath.Join(dir, "missing.lock")); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("readLockfile(missing) error = %v, want %v", err, ErrTrayNotRunning)
	}
}

func TestNotify(t *testing.T) {
	var got WebhookPayload
	var gotSecret string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get(secretHeader)
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	configDir := t.TempDir()
	stubConfigDir(t, configDir)
	stubProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "sportjournal-tray"}, nil
	})
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := u.Port() + "|42|s3cret"
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lock), 0600); err != nil {
		t.Fatal(err)
	}

	note := models.Notification{Title: "Workout Reminder", Message: "Time to move", Type: models.NotificationReminder}
	if err := New().NotifyNotification(context.Background(), note); err != nil {
		t.Fatalf("NotifyNotification() error = %v", err)
	}

	if gotSecret != "s3cret" {
		t.Errorf("secret header = %q, want s3cret", gotSecret)
	}
	if want := "⏰ Workout Reminder: Time to move"; got.Text != want {
		t.Errorf("payload text = %q, want %q", got.Text, want)
	}
	if got.DurationMs != constants.NotificationDurationMs {
		t.Errorf("payload duration = %d, want %d", got.DurationMs, constants.NotificationDurationMs)
	}
}

func TestSendReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad secret"))
	}))
	defer server.Close()

	u, _ := url.Parse(server.URL)
	err := New().send(context.Background(), u.Port(), "wrong", WebhookPayload{Text: "x"})
	if err == nil {
		t.Fatal("send() expected error for 401")
	}
}

func TestTrayStatus(t *testing.T) {
	configDir := t.TempDir()
	stubConfigDir(t, configDir)

	running, err := TrayStatus()
	if err != nil || running {
		t.Fatalf("TrayStatus() without lockfile = %v, %v; want false, nil", running, err)
	}

	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte("8080|42|s3cret"), 0600); err != nil {
		t.Fatal(err)
	}
	stubProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "sportjournal-tray"}, nil
	})

	running, err = TrayStatus()
	if err != nil || !running {
		t.Errorf("TrayStatus() with live tray = %v, %v; want true, nil", running, err)
	}
}
