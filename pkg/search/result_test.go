package search

import (
	"encoding/json"
	"time"

	"github.com/limaJavier/tournament/pkg/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("Record", func() {
	DescribeTable("time is floored and clamped",
		func(elapsed time.Duration, proven bool, expected uint64) {
			result := Result{Elapsed: elapsed, ProvenOptimal: proven}
			Expect(result.Record(testBudget).Time).To(Equal(expected))
		},
		Entry("under a second", 999*time.Millisecond, true, uint64(0)),
		Entry("fractional seconds", 2900*time.Millisecond, true, uint64(2)),
		Entry("beyond the budget", 400*time.Second, true, uint64(300)),
		Entry("unfinished search", 12*time.Second, false, uint64(300)),
	)

	It("serializes the four shapes", func() {
		objective := uint64(1)
		schedule := model.Schedule{{{1, 2}}}

		shapes := map[string]Result{
			`{"time":0,"optimal":true,"obj":null,"sol":[[[1,2]]]}`: {ProvenOptimal: true, Schedule: schedule},
			`{"time":0,"optimal":true,"obj":null,"sol":[]}`:        {ProvenOptimal: true},
			`{"time":300,"optimal":false,"obj":null,"sol":[]}`:     {},
			`{"time":0,"optimal":true,"obj":1,"sol":[[[1,2]]]}`:    {ProvenOptimal: true, Objective: &objective, Schedule: schedule},
		}
		for expected, result := range shapes {
			bytes, err := json.Marshal(result.Record(testBudget))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(bytes)).To(MatchJSON(expected))
		}
	})

	It("round trips through YAML", func() {
		objective := uint64(3)
		record := Record{Time: 12, Optimal: false, Obj: &objective, Sol: model.Schedule{{{1, 2}, {3, 4}}}}

		bytes, err := yaml.Marshal(record)
		Expect(err).NotTo(HaveOccurred())

		var decoded Record
		Expect(yaml.Unmarshal(bytes, &decoded)).To(Succeed())
		Expect(decoded).To(Equal(record))
	})
})

var _ = Describe("Tag", func() {
	It("derives the store key", func() {
		tag := NewTag("gini", model.Options{LabelFixing: true, Objective: true})
		Expect(tag.Key()).To(Equal("gini_obj_sb_pairing"))

		tag = NewTag("kissat", model.Options{Encoding: model.SlotEncoding})
		Expect(tag.Key()).To(Equal("kissat_noobj_nosb_slot"))
	})

	It("parses keys back", func() {
		tag, ok := ParseTag("cadical_noobj_sb_pairing-postponed")
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(Tag{Solver: "cadical", SymmetryBreaking: true, Strategy: "pairing-postponed"}))

		for _, key := range []string{"", "gini", "gini_obj_sb", "gini_maybe_sb_slot", "_obj_sb_slot"} {
			_, ok := ParseTag(key)
			Expect(ok).To(BeFalse(), key)
		}
	})
})

var _ = Describe("SearchContext", func() {
	It("never reports a negative remaining budget", func() {
		clock := &fakeClock{now: time.Now()}
		sc := clock.searchContext(10 * time.Second)

		clock.now = clock.now.Add(4 * time.Second)
		Expect(sc.Remaining()).To(Equal(6 * time.Second))
		Expect(sc.Expired()).To(BeFalse())

		clock.now = clock.now.Add(time.Minute)
		Expect(sc.Remaining()).To(BeZero())
		Expect(sc.Expired()).To(BeTrue())
	})
})
