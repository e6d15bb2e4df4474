package scenario_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavesim/internal/scenario"
	"github.com/san-kum/wavesim/internal/wave"
)

const slit = 8 * math.Pi

func ys(sources []wave.Source) []float64 {
	out := make([]float64, len(sources))
	for i, s := range sources {
		out[i] = s.Y
	}
	return out
}

var _ = Describe("Sources", func() {
	It("places a single wave at the origin", func() {
		sources, err := scenario.Sources(scenario.SingleWave, slit)
		Expect(err).NotTo(HaveOccurred())
		Expect(sources).To(Equal([]wave.Source{{X: 0, Y: 0}}))
	})

	It("places four sources across a single slit", func() {
		sources, err := scenario.Sources(scenario.SingleSlitDiffraction, slit)
		Expect(err).NotTo(HaveOccurred())
		Expect(sources).To(HaveLen(4))
		for _, s := range sources {
			Expect(s.X).To(BeZero())
		}
		want := []float64{-1.5 * math.Pi, -0.5 * math.Pi, 0.5 * math.Pi, 1.5 * math.Pi}
		for i, y := range ys(sources) {
			Expect(y).To(BeNumerically("~", want[i], 1e-12))
		}
	})

	It("places two sources at half the slit distance without diffraction", func() {
		sources, err := scenario.Sources(scenario.DoubleSlitNoDiffraction, slit)
		Expect(err).NotTo(HaveOccurred())
		Expect(sources).To(Equal([]wave.Source{{X: 0, Y: -slit / 2}, {X: 0, Y: slit / 2}}))
	})

	It("places eight sources around both slits with diffraction", func() {
		sources, err := scenario.Sources(scenario.DoubleSlitDiffraction, slit)
		Expect(err).NotTo(HaveOccurred())
		Expect(sources).To(HaveLen(8))

		Expect(sources[0].Y).To(BeNumerically("~", -1.5*math.Pi-slit/2, 1e-12))
		Expect(sources[1].Y).To(BeNumerically("~", -1.5*math.Pi+slit/2, 1e-12))
		Expect(sources[7].Y).To(BeNumerically("~", 1.5*math.Pi+slit/2, 1e-12))

		sum := 0.0
		for _, s := range sources {
			Expect(s.X).To(BeZero())
			sum += s.Y
		}
		Expect(sum).To(BeNumerically("~", 0, 1e-9))
	})

	It("follows the configured slit distance", func() {
		sources, err := scenario.Sources(scenario.DoubleSlitNoDiffraction, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(ys(sources)).To(Equal([]float64{-5, 5}))
	})

	It("returns fresh slices on every call", func() {
		a, _ := scenario.Sources(scenario.SingleWave, slit)
		a[0].X = 42
		b, _ := scenario.Sources(scenario.SingleWave, slit)
		Expect(b[0].X).To(BeZero())
	})

	It("rejects unknown scenarios", func() {
		sources, err := scenario.Sources(scenario.ID("triple_slit"), slit)
		Expect(err).To(MatchError(scenario.ErrUnknownScenario))
		Expect(sources).To(BeNil())
	})
})

var _ = Describe("Parse", func() {
	DescribeTable("known identifiers",
		func(name string, want scenario.ID) {
			id, err := scenario.Parse(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(want))
		},
		Entry("single wave", "single_wave", scenario.SingleWave),
		Entry("single slit", "single_slit_diffraction", scenario.SingleSlitDiffraction),
		Entry("double slit", "double_slit_diffraction", scenario.DoubleSlitDiffraction),
		Entry("double slit without diffraction", " double_slit_no_diffraction ", scenario.DoubleSlitNoDiffraction),
	)

	It("reports the available scenarios on error", func() {
		_, err := scenario.Parse("laser")
		Expect(err).To(MatchError(scenario.ErrUnknownScenario))
		Expect(err.Error()).To(ContainSubstring("single_wave"))
	})

	It("parses lists in order", func() {
		ids, err := scenario.ParseAll([]string{"double_slit_diffraction", "single_wave"})
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(Equal([]scenario.ID{scenario.DoubleSlitDiffraction, scenario.SingleWave}))

		_, err = scenario.ParseAll([]string{"single_wave", "bogus"})
		Expect(err).To(MatchError(scenario.ErrUnknownScenario))
	})
})

var _ = Describe("All", func() {
	It("lists every registered scenario with a description", func() {
		Expect(scenario.All()).To(HaveLen(len(scenario.Names())))
		for _, id := range scenario.All() {
			Expect(scenario.Describe(id)).NotTo(BeEmpty())
		}
	})
})
