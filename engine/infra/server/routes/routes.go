package routes

import "strconv"

// Index returns the post listing path.
func Index() string { return "/" }

// About returns the static about page path.
func About() string { return "/about" }

// Create returns the post creation form path.
func Create() string { return "/create" }

// Healthz returns the liveness probe path.
func Healthz() string { return "/healthz" }

// Metrics returns the JSON metrics path. The Prometheus exporter is mounted elsewhere.
func Metrics() string { return "/metrics" }

// Reserved returns the static paths the blog registers itself. Other handlers, such as the
// Prometheus exporter, must not be mounted on them.
func Reserved() []string {
	return []string{Index(), About(), Create(), Healthz(), Metrics()}
}

// PostParam is the gin path parameter carrying a post identifier.
const PostParam = "id"

// PostPattern returns the gin pattern for a single post.
func PostPattern() string { return "/:" + PostParam }

// Post returns the path of the post with the given id (e.g., "/42").
func Post(id int64) string {
	return "/" + strconv.FormatInt(id, 10)
}
