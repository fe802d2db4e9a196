package installcmder_test

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	installcmder "github.com/augmentcode/augmem/cmd/augmem/install"
)

// readSettings parses the settings.json written by the install command.
func readSettings(augmentDir string) map[string]any {
	data, err := os.ReadFile(filepath.Join(augmentDir, "settings.json"))
	Expect(err).NotTo(HaveOccurred())

	var settings map[string]any
	Expect(json.Unmarshal(data, &settings)).To(Succeed())
	return settings
}

// hookEvents returns the event names registered under "hooks".
func hookEvents(settings map[string]any) []string {
	hooks, ok := settings["hooks"].(map[string]any)
	Expect(ok).To(BeTrue())

	events := make([]string, 0, len(hooks))
	for event := range hooks {
		events = append(events, event)
	}
	return events
}

var _ = Describe("NewInstallCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := installcmder.NewInstallCmd()
		Expect(cmd.Use).To(Equal("install"))
	})

	It("has the tracking, path, and directory flags", func() {
		cmd := installcmder.NewInstallCmd()
		Expect(cmd.Flags().Lookup("enable-tool-tracking")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("use-path")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("augment-dir")).NotTo(BeNil())
	})

	It("rejects positional arguments", func() {
		cmd := installcmder.NewInstallCmd()
		cmd.SetArgs([]string{"extra"})
		Expect(cmd.Execute()).To(HaveOccurred())
	})
})

var _ = Describe("Install command execution", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "augmem-install-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("writes the hook scripts and registers the default hooks", func() {
		cmd := installcmder.NewInstallCmd()
		cmd.SetArgs([]string{"--augment-dir", tmpDir})
		Expect(cmd.Execute()).To(Succeed())

		hooksDir := filepath.Join(tmpDir, "memory-hooks")
		for _, file := range []string{"session_start.sh", "stop.sh", "post_tool_use.sh"} {
			path := filepath.Join(hooksDir, file)
			Expect(path).To(BeARegularFile())

			info, err := os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o755)))
		}

		settings := readSettings(tmpDir)
		Expect(hookEvents(settings)).To(ConsistOf("SessionStart", "Stop"))
	})

	It("registers the PostToolUse hook when tracking is enabled", func() {
		cmd := installcmder.NewInstallCmd()
		cmd.SetArgs([]string{"--augment-dir", tmpDir, "--enable-tool-tracking"})
		Expect(cmd.Execute()).To(Succeed())

		settings := readSettings(tmpDir)
		Expect(hookEvents(settings)).To(ConsistOf("SessionStart", "Stop", "PostToolUse"))
	})

	It("is idempotent across reruns", func() {
		for i := 0; i < 2; i++ {
			cmd := installcmder.NewInstallCmd()
			cmd.SetArgs([]string{"--augment-dir", tmpDir})
			Expect(cmd.Execute()).To(Succeed())
		}

		settings := readSettings(tmpDir)
		hooks := settings["hooks"].(map[string]any)
		Expect(hooks["SessionStart"]).To(HaveLen(1))
		Expect(hooks["Stop"]).To(HaveLen(1))
	})

	It("writes PATH-based wrappers with --use-path", func() {
		cmd := installcmder.NewInstallCmd()
		cmd.SetArgs([]string{"--augment-dir", tmpDir, "--use-path"})
		Expect(cmd.Execute()).To(Succeed())

		content, err := os.ReadFile(filepath.Join(tmpDir, "memory-hooks", "stop.sh"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(ContainSubstring("exec augmem hook stop"))
	})

	It("preserves unrelated settings", func() {
		settingsPath := filepath.Join(tmpDir, "settings.json")
		Expect(os.WriteFile(settingsPath, []byte(`{"theme": "dark"}`), 0o600)).To(Succeed())

		cmd := installcmder.NewInstallCmd()
		cmd.SetArgs([]string{"--augment-dir", tmpDir})
		Expect(cmd.Execute()).To(Succeed())

		settings := readSettings(tmpDir)
		Expect(settings).To(HaveKeyWithValue("theme", "dark"))
	})
})
