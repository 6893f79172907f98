package display

import (
	"image"
	"log/slog"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"fleetviz/internal/render"
)

// Window shows a figure in a desktop window and blocks until it is closed
type Window struct{}

// Show opens the window. It returns once the analyst closes it.
func (Window) Show(title string, img image.Image) error {
	a := app.NewWithID("fleetviz")
	w := a.NewWindow(title)

	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	b := img.Bounds()
	c.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))

	w.SetContent(c)
	w.Resize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	w.CenterOnScreen()

	slog.Debug("Opening chart window", "title", title, "width", b.Dx(), "height", b.Dy())
	w.ShowAndRun()
	return nil
}

// File writes the figure as a PNG instead of displaying it
type File struct {
	Path string
}

func (f File) Show(title string, img image.Image) error {
	if err := render.WritePNG(f.Path, img); err != nil {
		return err
	}
	slog.Info("Wrote chart", "title", title, "path", f.Path)
	return nil
}
