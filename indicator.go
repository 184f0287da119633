package pulltorefresh

// Indicator is the header or footer view revealed by a pull. The controller
// only reads its geometry and calls its lifecycle hooks; drawing is up to the
// implementation.
type Indicator interface {
	// Height is the indicator's full height and the maximum pull distance.
	Height() float64
	// TriggerHeight is the minimum offset at which a release refreshes.
	TriggerHeight() float64
	// RefreshingHeight is the rest offset held while refreshing.
	RefreshingHeight() float64

	OnPositionChanged(offset float64)
	OnBeginPull()
	// OnPull reports offset / TriggerHeight. Values above 1 mean a release
	// will refresh.
	OnPull(progress float64)
	OnRelease()
	OnRefreshingStart()
	OnRefreshingResult(success bool)
	OnRefreshingFinish()
}

// BaseIndicator is a fixed-height Indicator with no-op hooks. Embed it and
// override the hooks you need. Trigger and refreshing heights default to
// the full height when zero.
type BaseIndicator struct {
	Full    float64 // full height
	Trigger float64 // trigger height, Full when zero
	Rest    float64 // refreshing height, Full when zero
}

// Height implements Indicator.
func (b *BaseIndicator) Height() float64 { return b.Full }

// TriggerHeight implements Indicator.
func (b *BaseIndicator) TriggerHeight() float64 {
	if b.Trigger > 0 {
		return b.Trigger
	}
	return b.Full
}

// RefreshingHeight implements Indicator.
func (b *BaseIndicator) RefreshingHeight() float64 {
	if b.Rest > 0 {
		return b.Rest
	}
	return b.Full
}

func (b *BaseIndicator) OnPositionChanged(float64) {}
func (b *BaseIndicator) OnBeginPull()              {}
func (b *BaseIndicator) OnPull(float64)            {}
func (b *BaseIndicator) OnRelease()                {}
func (b *BaseIndicator) OnRefreshingStart()        {}
func (b *BaseIndicator) OnRefreshingResult(bool)   {}
func (b *BaseIndicator) OnRefreshingFinish()       {}

// ContentSurface is the scrollable content the indicators sit around.
type ContentSurface interface {
	IsAtTopBoundary() bool
	IsAtBottomBoundary() bool
}

// PullCondition is an extra host gate on starting a pull. It is consulted
// together with the mode and the content's edge position.
type PullCondition interface {
	CanPullFromHeader(c *Controller) bool
	CanPullFromFooter(c *Controller) bool
}

// ViewPullCondition permits a pull only while Surface is at the matching
// edge. A nil Surface always permits pulling.
type ViewPullCondition struct {
	Surface ContentSurface
}

// CanPullFromHeader implements PullCondition.
func (v ViewPullCondition) CanPullFromHeader(*Controller) bool {
	if v.Surface == nil {
		return true
	}
	return v.Surface.IsAtTopBoundary()
}

// CanPullFromFooter implements PullCondition.
func (v ViewPullCondition) CanPullFromFooter(*Controller) bool {
	if v.Surface == nil {
		return true
	}
	return v.Surface.IsAtBottomBoundary()
}
