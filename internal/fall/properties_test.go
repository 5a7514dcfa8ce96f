package fall_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/averdu/dragfall/internal/fall"
	"github.com/averdu/dragfall/internal/symbolic"
)

var _ = Describe("the compiled velocity model", func() {
	var ev symbolic.Evaluator

	BeforeEach(func() {
		var err error
		ev, err = fall.Compiled()
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("honors the initial condition",
		func(m, gamma, g, v0 float64) {
			v := ev([]float64{0}, m, gamma, g, v0)
			Expect(v[0]).To(BeNumerically("~", v0, 1e-12))
		},
		Entry("at rest", 80.0, 12.0, 9.81, 0.0),
		Entry("thrown down", 80.0, 12.0, 9.81, 40.0),
		Entry("thrown up", 2.0, 0.5, 9.81, -15.0),
		Entry("light body", 0.01, 0.3, 9.81, 1.0),
	)

	DescribeTable("converges to terminal velocity for large t",
		func(m, gamma, g, v0 float64) {
			v := ev([]float64{1000 * m / gamma}, m, gamma, g, v0)
			Expect(v[0]).To(BeNumerically("~", m*g/gamma, 1e-9))
		},
		Entry("skydiver", 80.0, 12.0, 9.81, 0.0),
		Entry("pebble", 0.05, 0.02, 9.81, 0.0),
		Entry("fast start", 3.0, 1.5, 9.81, 200.0),
	)

	It("approaches the asymptote from below when starting under it", func() {
		sc := fall.Scenario{
			Label:  "under",
			Params: fall.Params{Mass: 5, Drag: 2, Gravity: 9.81, V0: 1},
			TMax:   40,
			Points: 120,
		}
		res, err := fall.Evaluate(ev, sc)
		Expect(err).NotTo(HaveOccurred())

		for i := 1; i < len(res.Velocities); i++ {
			Expect(res.Velocities[i]).To(BeNumerically(">=", res.Velocities[i-1]))
			Expect(res.Velocities[i]).To(BeNumerically("<=", res.Terminal+1e-9))
		}
	})

	It("reports a non-negative relative error", func() {
		for _, v0 := range []float64{0, 10, 200} {
			sc := fall.Scenario{
				Label:  "err",
				Params: fall.Params{Mass: 4, Drag: 1.2, Gravity: 9.81, V0: v0},
				TMax:   8,
				Points: 64,
			}
			res, err := fall.Evaluate(ev, sc)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.RelError).To(BeNumerically(">=", 0))
			Expect(math.IsNaN(res.RelError)).To(BeFalse())
		}
	})
})

var _ = Describe("batch evaluation", func() {
	It("keeps aggregate length equal to scenarios minus faults", func() {
		ev, err := fall.Compiled()
		Expect(err).NotTo(HaveOccurred())

		scenarios := []fall.Scenario{
			{Label: "ok-1", Params: fall.Params{Mass: 1, Drag: 1, Gravity: 9.8}, TMax: 5, Points: 16},
			{Label: "no-drag", Params: fall.Params{Mass: 1, Drag: 0, Gravity: 9.8}, TMax: 5, Points: 16},
			{Label: "ok-2", Params: fall.Params{Mass: 2, Drag: 3, Gravity: 9.8}, TMax: 5, Points: 16},
			{Label: "no-mass", Params: fall.Params{Mass: 0, Drag: 1, Gravity: 9.8}, TMax: 5, Points: 16},
		}

		report := fall.EvaluateAll(ev, scenarios)
		Expect(report.Series()).To(HaveLen(len(scenarios) - len(report.Failures)))
		Expect(report.Failures).To(HaveLen(2))
	})
})
