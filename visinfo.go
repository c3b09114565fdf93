package bcf

import "encoding/xml"

// Viewpoint documents (VisualizationInfo) share one shape across 2.1
// and 3.0; the revisions differ only in whether the root element
// carries the viewpoint Guid.

type visinfoXML struct {
	XMLName           xml.Name           `xml:"VisualizationInfo"`
	GUID              string             `xml:"Guid,attr,omitempty"`
	Components        *componentsXML     `xml:"Components"`
	OrthogonalCamera  *orthoCameraXML    `xml:"OrthogonalCamera"`
	PerspectiveCamera *perspCameraXML    `xml:"PerspectiveCamera"`
	ClippingPlanes    *clippingPlanesXML `xml:"ClippingPlanes"`
}

type componentsXML struct {
	Components []componentXML `xml:"Component"`
}

type componentXML struct {
	IfcGUID           string `xml:"IfcGuid,attr,omitempty"`
	OriginatingSystem string `xml:"OriginatingSystem,omitempty"`
	AuthoringToolID   string `xml:"AuthoringToolId,omitempty"`
}

type perspCameraXML struct {
	CameraViewPoint xyzXML  `xml:"CameraViewPoint"`
	CameraDirection xyzXML  `xml:"CameraDirection"`
	CameraUpVector  xyzXML  `xml:"CameraUpVector"`
	FieldOfView     float64 `xml:"FieldOfView"`
}

type orthoCameraXML struct {
	CameraViewPoint  xyzXML  `xml:"CameraViewPoint"`
	CameraDirection  xyzXML  `xml:"CameraDirection"`
	CameraUpVector   xyzXML  `xml:"CameraUpVector"`
	ViewToWorldScale float64 `xml:"ViewToWorldScale"`
}

type xyzXML struct {
	X float64 `xml:"X"`
	Y float64 `xml:"Y"`
	Z float64 `xml:"Z"`
}

type clippingPlanesXML struct {
	Planes []clippingPlaneXML `xml:"ClippingPlane"`
}

type clippingPlaneXML struct {
	Location xyzXML `xml:"Location"`
	Normal   xyzXML `xml:"Normal"`
}

func (x xyzXML) vec() XYZ { return XYZ{X: x.X, Y: x.Y, Z: x.Z} }

func xyzOf(v XYZ) xyzXML { return xyzXML{X: v.X, Y: v.Y, Z: v.Z} }

// visinfoToViewpoint maps a parsed viewpoint document onto the entity
// model, wiring file names from the owning markup's reference.
func visinfoToViewpoint(doc visinfoXML, ref viewpointRef) *Viewpoint {
	v := &Viewpoint{
		GUID:         ref.guid,
		File:         ref.file,
		SnapshotFile: ref.snapshot,
	}
	if doc.GUID != "" {
		v.GUID = doc.GUID
	}
	switch {
	case doc.PerspectiveCamera != nil:
		v.Camera = &Camera{
			Kind:        CameraPerspective,
			ViewPoint:   doc.PerspectiveCamera.CameraViewPoint.vec(),
			Direction:   doc.PerspectiveCamera.CameraDirection.vec(),
			UpVector:    doc.PerspectiveCamera.CameraUpVector.vec(),
			FieldOfView: doc.PerspectiveCamera.FieldOfView,
		}
	case doc.OrthogonalCamera != nil:
		v.Camera = &Camera{
			Kind:             CameraOrthogonal,
			ViewPoint:        doc.OrthogonalCamera.CameraViewPoint.vec(),
			Direction:        doc.OrthogonalCamera.CameraDirection.vec(),
			UpVector:         doc.OrthogonalCamera.CameraUpVector.vec(),
			ViewToWorldScale: doc.OrthogonalCamera.ViewToWorldScale,
		}
	}
	if doc.Components != nil {
		for _, c := range doc.Components.Components {
			v.Components = append(v.Components, Component{
				IfcGUID:           c.IfcGUID,
				OriginatingSystem: c.OriginatingSystem,
				AuthoringToolID:   c.AuthoringToolID,
			})
		}
	}
	if doc.ClippingPlanes != nil {
		for _, p := range doc.ClippingPlanes.Planes {
			v.ClippingPlanes = append(v.ClippingPlanes, ClippingPlane{
				Location: p.Location.vec(),
				Normal:   p.Normal.vec(),
			})
		}
	}
	return v
}

// viewpointToVisinfo is the inverse mapping. withGUID controls whether
// the root element carries the Guid attribute (3.0 only).
func viewpointToVisinfo(v *Viewpoint, withGUID bool) visinfoXML {
	var doc visinfoXML
	if withGUID {
		doc.GUID = v.GUID
	}
	if v.Camera != nil {
		switch v.Camera.Kind {
		case CameraPerspective:
			doc.PerspectiveCamera = &perspCameraXML{
				CameraViewPoint: xyzOf(v.Camera.ViewPoint),
				CameraDirection: xyzOf(v.Camera.Direction),
				CameraUpVector:  xyzOf(v.Camera.UpVector),
				FieldOfView:     v.Camera.FieldOfView,
			}
		case CameraOrthogonal:
			doc.OrthogonalCamera = &orthoCameraXML{
				CameraViewPoint:  xyzOf(v.Camera.ViewPoint),
				CameraDirection:  xyzOf(v.Camera.Direction),
				CameraUpVector:   xyzOf(v.Camera.UpVector),
				ViewToWorldScale: v.Camera.ViewToWorldScale,
			}
		}
	}
	if len(v.Components) > 0 {
		cs := &componentsXML{}
		for _, c := range v.Components {
			cs.Components = append(cs.Components, componentXML{
				IfcGUID:           c.IfcGUID,
				OriginatingSystem: c.OriginatingSystem,
				AuthoringToolID:   c.AuthoringToolID,
			})
		}
		doc.Components = cs
	}
	if len(v.ClippingPlanes) > 0 {
		ps := &clippingPlanesXML{}
		for _, p := range v.ClippingPlanes {
			ps.Planes = append(ps.Planes, clippingPlaneXML{
				Location: xyzOf(p.Location),
				Normal:   xyzOf(p.Normal),
			})
		}
		doc.ClippingPlanes = ps
	}
	return doc
}
