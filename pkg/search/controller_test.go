package search

import (
	"time"

	"github.com/limaJavier/tournament/pkg/model"
	"github.com/limaJavier/tournament/pkg/sat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller", func() {
	var (
		clock  *fakeClock
		solver *scriptedSolver
	)

	BeforeEach(func() {
		clock = &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
		solver = newScriptedSolver(clock)
	})

	Context("deciding", func() {
		It("returns a verified schedule for six teams", func() {
			m := mustModel(6, model.Options{LabelFixing: true})

			result, err := NewController(solver, m).Decide(testContext(), clock.searchContext(testBudget))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(Proved))
			Expect(model.Verify(m.Instance(), result.Schedule)).To(Succeed())

			record := result.Record(testBudget)
			Expect(record.Optimal).To(BeTrue())
			Expect(record.Obj).To(BeNil())
			Expect(record.Sol).To(HaveLen(3))
			Expect(record.Time).To(Equal(uint64(1)))
		})

		It("proves that four teams cannot be scheduled", func() {
			m := mustModel(4, model.Options{Encoding: model.SlotEncoding})

			result, err := NewController(solver, m).Run(testContext(), clock.searchContext(testBudget))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(sat.Unsatisfiable))
			Expect(result.Record(testBudget)).To(Equal(Record{Time: 1, Optimal: true, Sol: model.Schedule{}}))
		})

		It("maps an unknown answer to a timeout", func() {
			solver.script[0] = sat.Unknown
			m := mustModel(6, model.Options{})

			result, err := NewController(solver, m).Decide(testContext(), clock.searchContext(testBudget))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(TimedOut))
			Expect(result.Record(testBudget)).To(Equal(Record{Time: 300, Sol: model.Schedule{}}))
		})

		It("reports a schedule or nothing with postponed periods", func() {
			m := mustModel(6, model.Options{PostponedPeriods: true})

			result, err := NewController(solver, m).Decide(testContext(), clock.searchContext(testBudget))

			Expect(err).NotTo(HaveOccurred())
			if result.State == Proved {
				Expect(model.Verify(m.Instance(), result.Schedule)).To(Succeed())
			} else {
				Expect(result.Schedule).To(BeNil())
			}
		})
	})

	Context("optimizing", func() {
		var m *model.Model

		BeforeEach(func() {
			m = mustModel(6, model.Options{LabelFixing: true, Objective: true})
		})

		It("finds the optimum of six teams", func() {
			result, err := NewController(sat.NewGiniSolver(), m).Run(testContext(), NewSearchContext(time.Minute))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(Proved))
			Expect(result.ProvenOptimal).To(BeTrue())
			Expect(result.Objective).To(HaveValue(Equal(uint64(1))))
			Expect(result.Schedule.MaxImbalance()).To(Equal(uint64(1)))
		})

		It("binary searches below the probe", func() {
			solver.extra[0] = hostEverything(m, 0)
			observer := &recordingObserver{}
			base := len(m.Formula().Cards)

			result, err := NewController(solver, m, WithObserver(observer)).Optimize(testContext(), clock.searchContext(testBudget))

			Expect(err).NotTo(HaveOccurred())
			Expect(observer.incumbents).To(Equal([]uint64{5, 1}))
			Expect(observer.statuses).To(Equal([]sat.Status{sat.Satisfiable, sat.Satisfiable, sat.Unsatisfiable}))
			Expect(result.Record(testBudget)).To(Equal(Record{Time: 3, Optimal: true, Obj: result.Objective, Sol: result.Schedule}))
			Expect(*result.Objective).To(Equal(uint64(1)))

			By("giving every query the remaining budget")
			Expect(solver.calls).To(HaveLen(3))
			Expect(solver.calls[0].budget).To(Equal(testBudget))
			Expect(solver.calls[1].budget).To(Equal(testBudget - time.Second))
			Expect(solver.calls[2].budget).To(Equal(testBudget - 2*time.Second))

			By("retracting every bound after its trial")
			Expect(solver.calls[0].cards).To(Equal(base))
			Expect(solver.calls[1].cards).To(Equal(base + 12))
			Expect(solver.calls[2].cards).To(Equal(base + 12))
		})

		It("keeps the incumbent when a trial times out", func() {
			solver.extra[0] = hostEverything(m, 0)
			solver.script[1] = sat.Unknown

			result, err := NewController(solver, m).Optimize(testContext(), clock.searchContext(testBudget))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(TimedOut))
			Expect(result.ProvenOptimal).To(BeFalse())

			record := result.Record(testBudget)
			Expect(record.Time).To(Equal(uint64(300)))
			Expect(record.Optimal).To(BeFalse())
			Expect(record.Obj).To(HaveValue(Equal(uint64(5))))
			Expect(model.Verify(m.Instance(), record.Sol)).To(Succeed())
		})

		It("times out when the probe is unknown", func() {
			solver.script[0] = sat.Unknown

			result, err := NewController(solver, m).Optimize(testContext(), clock.searchContext(testBudget))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(TimedOut))
			Expect(result.Record(testBudget)).To(Equal(Record{Time: 300, Sol: model.Schedule{}}))
			Expect(solver.calls).To(HaveLen(1))
		})

		It("stops issuing queries once the budget is spent", func() {
			solver.extra[0] = hostEverything(m, 0)
			solver.step = 10 * time.Second

			result, err := NewController(solver, m).Optimize(testContext(), clock.searchContext(15*time.Second))

			Expect(err).NotTo(HaveOccurred())
			Expect(solver.calls).To(HaveLen(2))
			Expect(solver.calls[1].budget).To(Equal(5 * time.Second))
			Expect(result.State).To(Equal(TimedOut))
			Expect(result.Elapsed).To(Equal(15 * time.Second))
		})

		It("issues no query with an expired budget", func() {
			sc := clock.searchContext(time.Second)
			clock.now = clock.now.Add(time.Minute)

			result, err := NewController(solver, m).Optimize(testContext(), sc)

			Expect(err).NotTo(HaveOccurred())
			Expect(solver.calls).To(BeEmpty())
			Expect(result.State).To(Equal(TimedOut))
		})

		It("records four teams as proven unsatisfiable", func() {
			m := mustModel(4, model.Options{Objective: true})

			result, err := NewController(solver, m).Optimize(testContext(), clock.searchContext(testBudget))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(Proved))
			Expect(result.Record(testBudget)).To(Equal(Record{Time: 1, Optimal: true, Sol: model.Schedule{}}))
		})

		It("returns solver failures without a schedule", func() {
			solver.extra[0] = hostEverything(m, 0)
			solver.failAt = 1

			result, err := NewController(solver, m).Optimize(testContext(), clock.searchContext(testBudget))

			Expect(err).To(MatchError(sat.ErrSolverFailure))
			Expect(result.Schedule).To(BeNil())
			Expect(result.ProvenOptimal).To(BeFalse())
		})
	})
})
