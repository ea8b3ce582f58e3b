// Package chart defines the value objects handed to an external chart
// renderer. Analysis builds these series; drawing them is out of scope
// for this module.
package chart

// Series is a labelled set of values for pie or bar rendering.
type Series struct {
	Name   string
	Values []float64
	Labels []string
}

// Histogram describes a binned distribution for histogram rendering.
type Histogram struct {
	Name   string
	Values []float64
	Bins   int
	Min    float64
	Max    float64
	XLabel string
	YLabel string
}

// Renderer is implemented by the external drawing collaborator.
type Renderer interface {
	Pie(s Series) error
	Bar(s Series) error
	Hist(h Histogram) error
}
