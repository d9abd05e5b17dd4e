package fractal

// ColorAt iterates z = z² + c from cfg.Z0 for at most cfg.MaxIter steps.
// A point whose squared magnitude exceeds cfg.Bailout is colored by the
// number of iterations taken, wrapped into the palette. Points that never
// escape get palette entry 0.
func ColorAt(cfg *Config, cr, ci float64) uint32 {
	maxIter := cfg.MaxIter
	bailout := cfg.Bailout
	zr, zi := cfg.Z0.X, cfg.Z0.Y

	for remaining := maxIter; remaining > 0; {
		remaining--
		zr2 := zr * zr
		zi2 := zi * zi
		if zr2+zi2 > bailout {
			return cfg.Palette.At((maxIter - remaining) % cfg.Palette.Len())
		}
		zi = ci + 2*zr*zi
		zr = cr + zr2 - zi2
	}
	return cfg.Palette.At(0)
}

// Mandelbrot is the Formula for the Mandelbrot family.
func Mandelbrot(cfg *Config, cr, ci float64) uint32 {
	return ColorAt(cfg, cr, ci)
}

// Iterations returns how many iterations c took to escape, and false if it
// did not escape within cfg.MaxIter. It follows the same recurrence and
// counting as ColorAt.
func Iterations(cfg *Config, cr, ci float64) (int, bool) {
	zr, zi := cfg.Z0.X, cfg.Z0.Y
	for remaining := cfg.MaxIter; remaining > 0; {
		remaining--
		zr2 := zr * zr
		zi2 := zi * zi
		if zr2+zi2 > cfg.Bailout {
			return cfg.MaxIter - remaining, true
		}
		zi = ci + 2*zr*zi
		zr = cr + zr2 - zi2
	}
	return cfg.MaxIter, false
}
