package scene

// ShadowPlan returns the lightmap draws: the opaque planet, then the cloud
// shell's far side and near side, accumulating light attenuation.
func ShadowPlan(f *Frame) []DrawCall {
	return []DrawCall{
		{
			Name:     "planet_shadow",
			Geometry: GeometrySphere,
			Program:  f.Programs.PlanetShadow,
			Uniforms: f.uniforms(f.PlanetMV, false),
			Params:   Opaque,
		},
		{
			Name:     "cloud_shadow_inside",
			Geometry: GeometrySphere,
			Program:  f.Programs.CloudShadow,
			Uniforms: f.uniforms(f.CloudMV, false),
			Params:   ShellInside,
		},
		{
			Name:     "cloud_shadow_outside",
			Geometry: GeometrySphere,
			Program:  f.Programs.CloudShadow,
			Uniforms: f.uniforms(f.CloudMV, false),
			Params:   ShellOutside,
		},
	}
}

// CompositePlan returns the screen draws: stars first so everything covers
// them, the planet, then the translucent cloud shell inside before outside.
func CompositePlan(f *Frame) []DrawCall {
	return []DrawCall{
		{
			Name:     "stars",
			Geometry: GeometryStars,
			Program:  f.Programs.Star,
			Uniforms: f.uniforms(f.StarMV, false),
			Params:   Points,
		},
		{
			Name:     "planet",
			Geometry: GeometrySphere,
			Program:  f.Programs.Planet,
			Uniforms: f.uniforms(f.PlanetMV, true),
			Params:   Opaque,
		},
		{
			Name:     "cloud_inside",
			Geometry: GeometrySphere,
			Program:  f.Programs.Cloud,
			Uniforms: f.uniforms(f.CloudMV, true),
			Params:   ShellInside,
		},
		{
			Name:     "cloud_outside",
			Geometry: GeometrySphere,
			Program:  f.Programs.Cloud,
			Uniforms: f.uniforms(f.CloudMV, true),
			Params:   ShellOutside,
		},
	}
}

// RenderShadowPass draws into the lightmap, sized to the framebuffer.
func RenderShadowPass(dev Device, f *Frame) {
	dev.BeginPass(TargetLightmap, f.Width, f.Height)
	for _, call := range ShadowPlan(f) {
		dev.Draw(call)
	}
}

// RenderCompositePass draws the visible frame and blits the lightmap preview.
func RenderCompositePass(dev Device, f *Frame) {
	dev.BeginPass(TargetScreen, f.Width, f.Height)
	for _, call := range CompositePlan(f) {
		dev.Draw(call)
	}
	dev.BlitLightmap(f.Width, f.Height, f.LightmapPreview)
}

// PreviewRect returns the top-right screen rectangle covering fraction of each
// screen dimension. ok is false when nothing would be visible.
func PreviewRect(screenW, screenH int32, fraction float32) (x0, y0, x1, y1 int32, ok bool) {
	if fraction <= 0 || screenW <= 0 || screenH <= 0 {
		return 0, 0, 0, 0, false
	}
	if fraction > 1 {
		fraction = 1
	}
	w := int32(float32(screenW) * fraction)
	h := int32(float32(screenH) * fraction)
	if w == 0 || h == 0 {
		return 0, 0, 0, 0, false
	}
	// GL window coordinates start at the bottom-left.
	return screenW - w, screenH - h, screenW, screenH, true
}
