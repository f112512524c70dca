// Package axis plans the ticks and labels of the time and price axes.
//
// Planning runs in three steps. Candidate values come from a ladder that
// suits the scale (1/2/5 steps, log decades, or calendar durations). A
// zoom-dependent density curve decides how many candidates the axis can
// hold. SelectPrioritized then drops candidates that would overlap their
// neighbours, never dropping a major tick in favour of a minor one.
//
// Labels are measured with a Measurer (an x/image font face or a go-text
// shaper) and formatted through a cache.LabelCache, so a frame that
// repeats the previous frame's ticks formats nothing.
package axis
