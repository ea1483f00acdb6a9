package hermes

const (
	SubjectOptimizeRequest = "portfolio.optimize.request"
	SubjectStats           = "portfolio.stats"

	// QueueGroup spreads optimize requests across service replicas.
	QueueGroup = "portfolio-optimizer"

	StreamName   = "PORTFOLIO_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectOptimizationCompleted(id string) string {
	return "portfolio.optimization." + id + ".completed"
}

func SubjectOptimizationRejected(id string) string {
	return "portfolio.optimization." + id + ".rejected"
}
