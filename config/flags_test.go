package config_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/Troublor/erebus-infoflow/config"
)

var _ = Describe("Flags", func() {
	It("should register every global definition", func() {
		for _, def := range config.GlobalFlagDefs {
			Expect(config.GlobalFlagSet.Lookup(def.Key)).NotTo(BeNil(), def.Key)
		}
	})

	It("should expose defaults through viper", func() {
		Expect(viper.GetString(config.CDebug.Key)).To(Equal("off"))
		Expect(viper.GetBool(config.CCache.Key)).To(BeTrue())
		Expect(viper.GetUint64(config.CRegisterBase.Key)).To(Equal(uint64(0x7e00_0000_0000)))
		Expect(viper.GetString(config.CAlertDedupWindow.Key)).To(Equal("10s"))
	})

	It("should read dashed keys from the environment", func() {
		DeferCleanup(os.Unsetenv, "INFOFLOW_INFOFLOW_REGISTER_BASE")
		Expect(os.Setenv("INFOFLOW_INFOFLOW_REGISTER_BASE", "4096")).To(Succeed())
		Expect(viper.GetUint64(config.CRegisterBase.Key)).To(Equal(uint64(4096)))
	})

	It("should parse typed flags", func() {
		set := config.BuildFlagSet("test",
			config.Def{Type: config.Uint64, Key: "base", Default: uint64(0)},
			config.Def{Type: config.Bool, Key: "cache", KeyShort: "c", Default: true},
		)
		Expect(set.Parse([]string{"--base", "4096", "-c=false"})).To(Succeed())
		base, err := set.GetUint64("base")
		Expect(err).To(BeNil())
		Expect(base).To(Equal(uint64(4096)))
		cache, err := set.GetBool("cache")
		Expect(err).To(BeNil())
		Expect(cache).To(BeFalse())
	})

	It("should prefix keys with the group name", func() {
		def := config.Def{Key: "persist", Type: config.Bool, Default: false}
		group := config.NewDefGroup("replay", def)
		Expect(group.KeyOf(def)).To(Equal("replay.persist"))
		Expect(func() { group.KeyOf(config.Def{Key: "missing"}) }).To(Panic())
	})
})
