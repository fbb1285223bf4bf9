package e2e_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const logfile = `{"id":"scsmbstgra","state":"STARTED","type":"APPLICATION_LOG","host":"12345","timestamp":1491377495212}
{"id":"scsmbstgrb","state":"STARTED","timestamp":1491377495213}
{"id":"scsmbstgrc","state":"FINISHED","timestamp":1491377495218}
{"id":"scsmbstgra","state":"FINISHED","type":"APPLICATION_LOG","host":"12345","timestamp":1491377495217}
{"id":"scsmbstgrc","state":"STARTED","timestamp":1491377495210}
{"id":"scsmbstgrb","state":"FINISHED","timestamp":1491377495216}
{"id":"scsmbstgrb","state":"FINISHED","timestamp":1491377495216}
{"id":"scsmbstgrd","state":"STARTED","timestamp":1491377495300}
`

type row struct {
	ID         string   `json:"id"`
	DurationMs *float64 `json:"durationMs"`
	Alert      bool     `json:"alert"`
}

type rows struct {
	Rows []row `json:"rows"`
}

func report(args ...string) rows {
	out, err := testContext.Run(nil, append([]string{"report", "--format", "json"}, args...)...)
	Expect(err).NotTo(HaveOccurred())

	var ret rows
	Expect(json.Unmarshal([]byte(out), &ret)).To(Succeed())

	return ret
}

func ms(v float64) *float64 {
	return &v
}

var _ = Describe("Processing an event log", Ordered, func() {
	var overrides map[string]string

	BeforeAll(func() {
		path, err := testContext.WriteLog("logfile.txt", logfile)
		Expect(err).NotTo(HaveOccurred())

		overrides = map[string]string{"EVENTLOG_INPUT_FILE_PATH": path}
	})

	It("should store durations and alerts", func() {
		_, err := testContext.Run(overrides, "process", "--reset")
		Expect(err).NotTo(HaveOccurred())

		Expect(report("--all").Rows).To(Equal([]row{
			{ID: "scsmbstgra", DurationMs: ms(5), Alert: true},
			{ID: "scsmbstgrb", DurationMs: ms(3)},
			{ID: "scsmbstgrc", DurationMs: ms(8), Alert: true},
			{ID: "scsmbstgrd"},
		}))

		Expect(report().Rows).To(HaveLen(2))

		By("pushing the metrics of the run")
		Expect(testContext.LastPushedCounter("main_record_outcome_total", "outcome", "created")).To(Equal(4.0))
		Expect(testContext.LastPushedCounter("main_alert_total", "", "")).To(Equal(2.0))
	})

	It("should not change anything when replayed", func() {
		before := report("--all")

		_, err := testContext.Run(overrides, "process")
		Expect(err).NotTo(HaveOccurred())

		Expect(report("--all")).To(Equal(before))
		Expect(testContext.LastPushedCounter("main_record_outcome_total", "outcome", "created")).To(Equal(0.0))
		Expect(testContext.LastPushedCounter("main_record_outcome_total", "outcome", "updated")).To(Equal(0.0))
	})

	It("should honor the configured threshold", func() {
		overrides := map[string]string{
			"EVENTLOG_INPUT_FILE_PATH":       overrides["EVENTLOG_INPUT_FILE_PATH"],
			"EVENTLOG_CORRELATION_THRESHOLD": "6ms",
		}

		_, err := testContext.Run(overrides, "process", "--reset")
		Expect(err).NotTo(HaveOccurred())

		alerts := report()
		Expect(alerts.Rows).To(HaveLen(1))
		Expect(alerts.Rows[0].ID).To(Equal("scsmbstgrc"))
	})
})

var _ = Describe("Processing an invalid event log", Ordered, func() {
	It("should fail without touching the store", func() {
		path, err := testContext.WriteLog("valid.txt", logfile)
		Expect(err).NotTo(HaveOccurred())

		_, err = testContext.Run(map[string]string{"EVENTLOG_INPUT_FILE_PATH": path}, "process", "--reset")
		Expect(err).NotTo(HaveOccurred())

		before := report("--all")

		path, err = testContext.WriteLog("invalid.txt", `{"id":"new","state":"STARTED","timestamp":1}`+"\n"+`{"id":"new","state":"PAUSED","timestamp":2}`)
		Expect(err).NotTo(HaveOccurred())

		_, err = testContext.Run(map[string]string{"EVENTLOG_INPUT_FILE_PATH": path}, "process", "--reset")
		Expect(err).To(HaveOccurred())

		Expect(report("--all")).To(Equal(before))
	})

	It("should fail on a missing file", func() {
		_, err := testContext.Run(map[string]string{"EVENTLOG_INPUT_FILE_PATH": "/does/not/exist"}, "process")
		Expect(err).To(HaveOccurred())
	})
})
