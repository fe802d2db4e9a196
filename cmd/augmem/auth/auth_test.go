package authcmder_test

import (
	"bytes"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	authcmder "github.com/augmentcode/augmem/cmd/augmem/auth"
	"github.com/augmentcode/augmem/pkg/config"
)

var _ = Describe("Auth Command", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "augmem-auth-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("NewAuthCmd", func() {
		It("creates a command with expected properties", func() {
			cmd := authcmder.NewAuthCmd()
			Expect(cmd.Use).To(Equal("auth"))
			Expect(cmd.Short).NotTo(BeEmpty())
		})

		It("has --api-key flag", func() {
			cmd := authcmder.NewAuthCmd()
			flag := cmd.Flags().Lookup("api-key")
			Expect(flag).NotTo(BeNil())
		})

		It("has --remove flag", func() {
			cmd := authcmder.NewAuthCmd()
			flag := cmd.Flags().Lookup("remove")
			Expect(flag).NotTo(BeNil())
		})

		It("rejects positional arguments", func() {
			cmd := authcmder.NewAuthCmd()
			cmd.PersistentFlags().String("config-dir", "", "Override path to .augment/ config directory")
			cmd.SetArgs([]string{"token-value"})

			err := cmd.Execute()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("--remove flag", func() {
		It("removes stored credentials", func() {
			cfger, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfger.SetConfigValue("bearer_token", "tok-123")).To(Succeed())
			Expect(cfger.SetConfigValue("api_key", "key-456")).To(Succeed())

			cmd := authcmder.NewAuthCmd()
			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.PersistentFlags().String("config-dir", "", "Override path to .augment/ config directory")
			cmd.SetArgs([]string{"--remove", "--config-dir", tmpDir})

			err = cmd.Execute()
			Expect(err).NotTo(HaveOccurred())

			token, err := cfger.GetConfigValue("bearer_token")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).To(BeEmpty())

			key, err := cfger.GetConfigValue("api_key")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(BeEmpty())
		})

		It("succeeds when nothing is stored", func() {
			cmd := authcmder.NewAuthCmd()
			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.PersistentFlags().String("config-dir", "", "Override path to .augment/ config directory")
			cmd.SetArgs([]string{"--remove", "--config-dir", tmpDir})

			err := cmd.Execute()
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
