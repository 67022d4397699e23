package legoland

// SceneFrame lists the objects created in one scene, in registration order.
// It is the unit of data handed to a rendering backend.
type SceneFrame struct {
	SceneID    int
	Primitives []int
	Composites []Range
}

// PrimitiveView is an owned snapshot of one primitive's geometry and
// visual properties. It stays valid across later mutations of the space.
type PrimitiveView struct {
	ID     int
	Faces  Faces
	Visual map[string]any
}

// RenderView returns one frame per scene, ordered by ascending scene id
// from 0 through the current scene counter inclusive. The open scene is
// included so a renderer can draw work in progress.
func (s *Space) RenderView() []SceneFrame {
	frames := make([]SceneFrame, 0, s.sceneCounter+1)
	for sc := 0; sc <= s.sceneCounter; sc++ {
		frames = append(frames, SceneFrame{
			SceneID:    sc,
			Primitives: s.index.PrimitivesByScene(sc),
			Composites: s.index.CompositesByScene(sc),
		})
	}
	return frames
}

// FrameGeometry expands a frame into per-primitive views, composites
// flattened row by row. Everything returned is an owned copy.
func (s *Space) FrameGeometry(frame SceneFrame) ([]PrimitiveView, error) {
	var views []PrimitiveView
	appendView := func(id int) error {
		faces, err := s.coordinates.Get(id)
		if err != nil {
			return err
		}
		views = append(views, PrimitiveView{
			ID:     id,
			Faces:  faces,
			Visual: s.metadata.Row(id),
		})
		return nil
	}

	for _, id := range frame.Primitives {
		if err := appendView(id); err != nil {
			return nil, err
		}
	}
	for _, r := range frame.Composites {
		for id := r.Start; id < r.Stop; id++ {
			if err := appendView(id); err != nil {
				return nil, err
			}
		}
	}
	return views, nil
}
