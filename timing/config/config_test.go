package config_test

import (
	"math"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/blinkcpu/timing/config"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	Describe("DefaultConfig", func() {
		It("should tick at 2 Hz with the panel's probabilities", func() {
			c := config.DefaultConfig()
			Expect(c.FrequencyHz).To(Equal(2.0))
			Expect(c.Slot2Probability).To(Equal(0.66))
			Expect(c.Slot3Probability).To(Equal(0.33))
			Expect(c.MaxTicks).To(BeZero())
			Expect(c.Period()).To(Equal(500 * time.Millisecond))
			Expect(c.Validate()).To(Succeed())
		})
	})

	Describe("JSON files", func() {
		It("should override only the given fields", func() {
			path := write("run.json", `{"frequency_hz": 10, "max_ticks": 30}`)

			c, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.FrequencyHz).To(Equal(10.0))
			Expect(c.MaxTicks).To(Equal(uint64(30)))
			Expect(c.Slot2Probability).To(Equal(0.66))
		})

		It("should round-trip through SaveConfig", func() {
			c := config.DefaultConfig()
			c.Seed = 77
			c.Summary = true
			path := filepath.Join(dir, "saved.json")
			Expect(c.SaveConfig(path)).To(Succeed())

			loaded, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(c))
		})

		It("should report malformed JSON", func() {
			path := write("bad.json", `{"frequency_hz":`)
			_, err := config.LoadConfig(path)
			Expect(err).To(MatchError(ContainSubstring("failed to parse config")))
		})

		It("should report a missing file", func() {
			_, err := config.LoadConfig(filepath.Join(dir, "missing.json"))
			Expect(err).To(MatchError(ContainSubstring("failed to read config file")))
		})
	})

	Describe("Starlark files", func() {
		It("should evaluate expressions into settings", func() {
			path := write("run.star", `
frequency_hz = 4
slot3_probability = 0.5
max_ticks = 3 * 100
seed = 12
realtime = False
summary = True
`)

			c, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.FrequencyHz).To(Equal(4.0))
			Expect(c.Slot3Probability).To(Equal(0.5))
			Expect(c.MaxTicks).To(Equal(uint64(300)))
			Expect(c.Seed).To(Equal(uint64(12)))
			Expect(c.Realtime).To(BeFalse())
			Expect(c.Summary).To(BeTrue())
			Expect(c.Color).To(BeTrue())
		})

		It("should reject unknown settings", func() {
			path := write("typo.star", "frequncy_hz = 4\n")
			_, err := config.LoadConfig(path)
			Expect(err).To(MatchError(ContainSubstring("unknown setting")))
		})

		It("should reject wrongly typed settings", func() {
			path := write("types.star", `max_ticks = "ten"`+"\n")
			_, err := config.LoadConfig(path)
			Expect(err).To(MatchError(ContainSubstring("want int")))
		})

		It("should reject negative counts", func() {
			path := write("neg.star", "max_ticks = -1\n")
			_, err := config.LoadConfig(path)
			Expect(err).To(MatchError(ContainSubstring("out of range")))
		})

		It("should surface script errors", func() {
			path := write("broken.star", "frequency_hz = (\n")
			_, err := config.LoadConfig(path)
			Expect(err).To(MatchError(ContainSubstring("failed to evaluate config")))
		})
	})

	Describe("Validate", func() {
		It("should reject a non-positive frequency", func() {
			c := config.DefaultConfig()
			c.FrequencyHz = 0
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))
		})

		It("should reject NaN and infinite frequencies", func() {
			for _, hz := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				c := config.DefaultConfig()
				c.FrequencyHz = hz
				Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig), "hz=%v", hz)
			}
		})

		It("should reject frequencies too high for a wall-clock period", func() {
			c := config.DefaultConfig()
			c.FrequencyHz = 1e10
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))

			c.FrequencyHz = 1e9
			Expect(c.Validate()).To(Succeed())
			Expect(c.Period()).To(Equal(time.Nanosecond))
		})

		It("should reject NaN probabilities", func() {
			c := config.DefaultConfig()
			c.Slot2Probability = math.NaN()
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))

			c = config.DefaultConfig()
			c.Slot3Probability = math.NaN()
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))
		})

		It("should reject an infinite frequency from a Starlark file", func() {
			path := write("inf.star", `frequency_hz = float("inf")`+"\n")
			c, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))
		})

		It("should reject probabilities outside [0, 1]", func() {
			c := config.DefaultConfig()
			c.Slot2Probability = 1.5
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))

			c = config.DefaultConfig()
			c.Slot3Probability = -0.1
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))
		})
	})

	Describe("Clone", func() {
		It("should be independent of the original", func() {
			c := config.DefaultConfig()
			clone := c.Clone()
			clone.FrequencyHz = 50
			Expect(c.FrequencyHz).To(Equal(2.0))
			Expect(clone).NotTo(BeIdenticalTo(c))
		})
	})
})
