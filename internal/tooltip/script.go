package tooltip

// Script is the tooltip behavior handed to the page script.
type Script struct {
	VisibleOpacity float64 `json:"visibleOpacity"`
	HiddenOpacity  float64 `json:"hiddenOpacity"`
	FadeInMS       int64   `json:"fadeInMs"`
	FadeOutMS      int64   `json:"fadeOutMs"`
	OffsetY        float64 `json:"offsetY"`
	Easing         string  `json:"easing"`
}

// ScriptConfig returns the constants the Controller uses.
func ScriptConfig() Script {
	return Script{
		VisibleOpacity: VisibleOpacity,
		HiddenOpacity:  HiddenOpacity,
		FadeInMS:       FadeIn.Milliseconds(),
		FadeOutMS:      FadeOut.Milliseconds(),
		OffsetY:        OffsetY,
		Easing:         EasingCSS,
	}
}
