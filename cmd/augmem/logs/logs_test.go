package logscmder

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// syncBuffer is a bytes.Buffer safe to read while followLog writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// withEnv sets an environment variable for the duration of the spec.
func withEnv(key, value string) {
	orig, had := os.LookupEnv(key)
	Expect(os.Setenv(key, value)).To(Succeed())
	DeferCleanup(func() {
		if had {
			Expect(os.Setenv(key, orig)).To(Succeed())
		} else {
			Expect(os.Unsetenv(key)).To(Succeed())
		}
	})
}

var _ = Describe("NewLogsCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := NewLogsCmd()
		Expect(cmd.Use).To(Equal("logs"))
	})

	It("has a follow flag with shorthand f", func() {
		cmd := NewLogsCmd()
		flag := cmd.Flags().Lookup("follow")
		Expect(flag).NotTo(BeNil())
		Expect(flag.Shorthand).To(Equal("f"))
	})

	It("rejects any arguments", func() {
		cmd := NewLogsCmd()
		err := cmd.Args(cmd, []string{"extra"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("runLogs", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "augmem-logs-test-*")
		Expect(err).NotTo(HaveOccurred())

		withEnv("HOME", tmpDir)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(tmpDir)).To(Succeed())
	})

	It("reports when no log exists yet", func() {
		var out bytes.Buffer
		Expect(runLogs(context.Background(), &out, false)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("No hook logs"))
	})

	It("errors when following a missing log", func() {
		var out bytes.Buffer
		err := runLogs(context.Background(), &out, true)
		Expect(err).To(MatchError("no hook logs found"))
	})

	It("prints the existing log content", func() {
		logDir := filepath.Join(tmpDir, ".augment", "memory-hooks")
		Expect(os.MkdirAll(logDir, 0o755)).To(Succeed())
		logPath := filepath.Join(logDir, "hooks.log")
		Expect(os.WriteFile(logPath, []byte("line one\nline two\n"), 0o600)).To(Succeed())

		var out bytes.Buffer
		Expect(runLogs(context.Background(), &out, false)).To(Succeed())
		Expect(out.String()).To(Equal("line one\nline two\n"))
	})
})

var _ = Describe("followLog", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "augmem-follow-logs-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(tmpDir)).To(Succeed())
	})

	It("tails new log content only", func() {
		logPath := filepath.Join(tmpDir, "hooks.log")
		Expect(os.WriteFile(logPath, []byte("old\n"), 0o600)).To(Succeed())

		ctx, cancel := context.WithCancel(context.Background())
		DeferCleanup(cancel)
		out := &syncBuffer{}
		errChan := make(chan error, 1)
		go func() {
			errChan <- followLog(ctx, logPath, out)
		}()

		time.Sleep(50 * time.Millisecond)
		Expect(appendToFile(logPath, []byte("new\n"))).To(Succeed())

		Eventually(out.String, 2*time.Second, 50*time.Millisecond).Should(ContainSubstring("new"))
		Expect(out.String()).NotTo(ContainSubstring("old"))
		cancel()
		Eventually(errChan, 2*time.Second, 50*time.Millisecond).Should(Receive(MatchError(context.Canceled)))
	})
})

func appendToFile(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.Write(data)
	return err
}
