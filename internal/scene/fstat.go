package scene

import (
	"fmt"

	"github.com/san-kum/statanim/internal/config"
	"github.com/san-kum/statanim/internal/geometry"
	"github.com/san-kum/statanim/internal/stats"
)

const (
	graphWidth  = 7.0
	graphHeight = 4.0
	blockSize   = 0.7 * formulaSize
	blockTopBuf = 1.0
)

var (
	ssLines = []string{
		`SS_{mod} &= SS_{tot} - SS_{res}`,
		`SS_{res} &= \sum (Y_i - \hat{Y}_i)^2`,
	}
	dfLines = []string{
		`df_{\text{model}} &= \text{number of parameters} - 1`,
		`df_{\text{error}} &= \text{number of observations} - \text{number of parameters}`,
	}
	msLines = []string{
		`MS_{\text{mod}} &= \frac{SS_{\text{mod}}}{df_{\text{mod}}}`,
		`MS_{\text{err}} &= \frac{SS_{\text{err}}}{df_{\text{err}}}`,
	}
	fLine = `F = \frac{MS_{\text{mod}}}{MS_{\text{err}}}`
)

// FStatistic scripts how the F statistic arises: the SS, df and MS
// definitions, normal errors squaring into a chi-squared variable, the ratio
// of two chi-squared mean squares, and the resulting F density with its
// critical value.
func FStatistic(cfg *config.Config) (*Timeline, error) {
	pal := cfg.Palette.Merge(geometry.DefaultPalette())
	fc := cfg.FStat
	t := cfg.Timing
	s := NewScript("fstat", t.RunTime)

	// Definitions, written top to bottom.
	ss := block(ssLines, blockSize, pal.Text).ToEdge(geometry.Up, blockTopBuf)
	df := block(dfLines, blockSize, pal.Text).NextTo(ss, geometry.Down, nextToBuff, false)
	ms := block(msLines, blockSize, pal.Text).NextTo(df, geometry.Down, nextToBuff, false)
	f := formula(fLine, blockSize, pal.Text).NextTo(ms, geometry.Down, nextToBuff, false)
	defs := []ID{
		s.Add("ss_block", ss),
		s.Add("df_block", df),
		s.Add("ms_block", ms),
		s.Add("f_block", f),
	}
	for _, id := range defs {
		s.Play(Write(id))
	}
	s.Wait(2 * t.Hold)
	s.Play(each(FadeOut, defs...)...)

	// Normal errors square into a chi-squared variable.
	normalAxes := geometry.Axes{
		X: geometry.Range{Min: -4, Max: 4}, XStep: 1,
		Y: geometry.Range{Min: 0, Max: 0.5}, YStep: 0.1,
		Width: graphWidth, Height: graphHeight, Color: pal.Axes,
	}
	normal, err := normalAxes.Graph(stats.NormalPDF, normalAxes.X, fc.Samples, pal.Normal)
	if err != nil {
		return nil, err
	}
	chi, err := chiSquaredGraph(fc.DFSquared, fc.Samples, pal)
	if err != nil {
		return nil, err
	}
	normalID := s.Add("normal_curve", normal)
	normalText := s.Add("normal_caption", caption("Errors are assumed to be normally distributed", pal.Text))
	s.Play(Create(normalID), Write(normalText))
	s.Wait(t.Hold)

	chiID := s.Add("chi_squared_curve", chi)
	chiText := s.Add("chi_squared_caption", caption("Squaring the errors gives a Chi-Squared Distribution", pal.Text))
	s.Play(Transform(normalID, chiID), Transform(normalText, chiText))
	s.Wait(t.Hold)
	s.Clear()

	// Mean squares of the model and of the error, side by side.
	modelGraph, err := chiSquaredGraph(fc.DFModel, fc.Samples, pal)
	if err != nil {
		return nil, err
	}
	errorGraph, err := chiSquaredGraph(fc.DFError, fc.Samples, pal)
	if err != nil {
		return nil, err
	}
	modelCurve := modelGraph.Scale(0.5).ToEdge(geometry.Left, 1)
	errorCurve := errorGraph.Scale(0.5).ToEdge(geometry.Right, 1)
	modelID := s.Add("ms_model_curve", modelCurve)
	errorID := s.Add("ms_error_curve", errorCurve)
	msText := s.Add("ms_caption", caption("MS Model and MS Error (Chi-Squared)", pal.Text))
	s.Play(Create(modelID), Create(errorID), Write(msText))
	s.Wait(t.Hold)

	// Their ratio: numerator above a division bar, denominator below.
	ratioID := s.Add("f_ratio", ratioGroup(modelCurve, errorCurve, pal))
	ratioText := s.Add("ratio_caption", caption("Dividing two chi-squared distributed variables", pal.Text))
	s.Play(Replace(modelID, ratioID), Replace(errorID, ratioID), Transform(msText, ratioText))
	s.Wait(t.Hold)
	s.Remove(msText)

	// The ratio follows an F distribution.
	fAxes := geometry.Axes{
		X: geometry.Range{Min: 0, Max: 5}, XStep: 1,
		Y: geometry.Range{Min: 0, Max: 1}, YStep: 0.2,
		Width: graphWidth, Height: graphHeight, Color: pal.Axes,
	}
	pdf, err := stats.FDensity(fc.DFModel, fc.DFError)
	if err != nil {
		return nil, err
	}
	fGraph, err := fAxes.Graph(pdf, fAxes.X, fc.Samples, pal.F)
	if err != nil {
		return nil, err
	}
	fID := s.Add("f_curve", fGraph)
	fText := s.Add("f_caption", caption("Gives an F-Distribution", pal.Text))
	s.Play(FadeIn(fText), Replace(ratioID, fID))
	s.Wait(t.Hold)

	if fc.Alpha > 0 {
		crit, err := stats.FCritical(fc.Alpha, fc.DFModel, fc.DFError)
		if err != nil {
			return nil, err
		}
		if crit <= fAxes.X.Max {
			top := fAxes.ToScene(crit, pdf(crit))
			marker := geometry.Group{geometry.DashedSegment(fAxes.ToScene(crit, 0), top, pal.Critical)}
			label := formula(fmt.Sprintf(`F_{crit}(\alpha = %.2f) = %.2f`, fc.Alpha, crit), blockSize, pal.Critical).
				NextTo(marker, geometry.Up, nextToBuff, false)
			markerID := s.Add("f_critical", marker)
			labelID := s.Add("f_critical_label", label)
			s.Play(Create(markerID), Write(labelID))
			s.Wait(2 * t.Hold)
		}
	}

	return s.Timeline()
}

func chiSquaredGraph(df, samples int, pal geometry.Palette) (geometry.Group, error) {
	pdf, err := stats.ChiSquaredDensity(df)
	if err != nil {
		return nil, err
	}
	axes := geometry.Axes{
		X: geometry.Range{Min: 0, Max: 10}, XStep: 1,
		Y: geometry.Range{Min: 0, Max: 0.5}, YStep: 0.1,
		Width: graphWidth, Height: graphHeight, Color: pal.Axes,
	}
	return axes.Graph(pdf, geometry.Range{Min: 0.01, Max: 10}, samples, pal.ChiSquared)
}

// ratioGroup lays the model curve over the error curve with a division bar
// between them and the MS ratio beside the numerator.
func ratioGroup(model, errCurve geometry.Group, pal geometry.Palette) geometry.Group {
	num := model.ToEdge(geometry.Up, edgeBuff).Translate(geometry.Vec2{X: 2, Y: -1})
	den := errCurve.ToEdge(geometry.Down, edgeBuff).Translate(geometry.Vec2{X: -2, Y: 1})
	ratio := formula(`\frac{MS_{\text{model}}}{MS_{\text{error}}}`, blockSize, pal.Text).NextTo(num, geometry.Right, edgeBuff, false)
	bar := geometry.Segment(geometry.Vec2{X: -geometry.FrameHeight / 2}, geometry.Vec2{X: geometry.FrameHeight / 2}, pal.Axes)

	g := make(geometry.Group, 0, len(num)+len(den)+len(ratio)+1)
	g = append(g, num...)
	g = append(g, den...)
	g = append(g, ratio...)
	g = append(g, bar)
	return g.Translate(geometry.Down.Scale(0.5))
}
