package search

import (
	"time"

	"github.com/limaJavier/tournament/pkg/model"
	"github.com/limaJavier/tournament/pkg/sat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("In-process solvers", func() {
	const budget = 5 * time.Minute

	DescribeTable("prove the optimum of eight teams",
		func(solverName string, options model.Options) {
			solver, err := sat.NewSolver(solverName, nil)
			Expect(err).NotTo(HaveOccurred())
			options.Objective = true
			m := mustModel(8, options)

			result, err := NewController(solver, m).Run(testContext(), NewSearchContext(budget))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(Proved))
			Expect(result.ProvenOptimal).To(BeTrue())
			Expect(model.Verify(m.Instance(), result.Schedule)).To(Succeed())
			Expect(result.Objective).To(HaveValue(Equal(uint64(1))))
			Expect(result.Schedule.MaxImbalance()).To(Equal(uint64(1)))
		},
		Entry("gini, pairing", "gini", model.Options{Encoding: model.PairingEncoding}),
		Entry("gini, pairing, label fixing", "gini", model.Options{Encoding: model.PairingEncoding, LabelFixing: true}),
		Entry("gini, slot", "gini", model.Options{Encoding: model.SlotEncoding}),
		Entry("gini, slot, label fixing", "gini", model.Options{Encoding: model.SlotEncoding, LabelFixing: true}),
		Entry("gophersat, pairing", "gophersat", model.Options{Encoding: model.PairingEncoding}),
		Entry("gophersat, pairing, label fixing", "gophersat", model.Options{Encoding: model.PairingEncoding, LabelFixing: true}),
		Entry("gophersat, slot", "gophersat", model.Options{Encoding: model.SlotEncoding}),
		Entry("gophersat, slot, label fixing", "gophersat", model.Options{Encoding: model.SlotEncoding, LabelFixing: true}),
	)

	DescribeTable("decide label-fixed instances",
		func(solverName string, teams int, options model.Options) {
			solver, err := sat.NewSolver(solverName, nil)
			Expect(err).NotTo(HaveOccurred())
			m := mustModel(teams, options)

			result, err := NewController(solver, m).Run(testContext(), NewSearchContext(budget))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(Proved))
			Expect(model.Verify(m.Instance(), result.Schedule)).To(Succeed())
			Expect(result.Schedule[0][0]).To(Equal(model.Game{1, 2}))
		},
		Entry("gini, six teams, slot with home-away order", "gini", 6, model.Options{Encoding: model.SlotEncoding, LabelFixing: true, HomeAwayOrder: true, PairKey: model.OrderedPairKey}),
		Entry("gophersat, six teams, pairing", "gophersat", 6, model.Options{LabelFixing: true}),
		Entry("gophersat, eight teams, slot", "gophersat", 8, model.Options{Encoding: model.SlotEncoding, LabelFixing: true}),
	)
})
