package device

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/boundary"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/parts"
	"github.com/quartetsim/quartet/pkg/shape"
)

// ---------------------------------------------------------------------------
// Build state
// ---------------------------------------------------------------------------

// BuildState tracks the assembler lifecycle.
type BuildState int

const (
	// Uninitialized means no completed geometry exists.
	Uninitialized BuildState = iota
	// Built means the device tree and its interfaces are complete.
	Built
)

func (s BuildState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Built:
		return "built"
	default:
		return "unknown"
	}
}

// ---------------------------------------------------------------------------
// Assembler
// ---------------------------------------------------------------------------

// Assembler drives device construction against the sinks in its
// BuildContext. It is not safe for concurrent builds; rebuild
// sequentially.
type Assembler struct {
	ctx   *BuildContext
	state BuildState
	set   boundary.StandardSet

	mats struct {
		helium  *material.Material
		silicon *material.Material
		niobium *material.Material
	}

	world      *assembly.Volume
	substrate  *assembly.Volume
	interfaces []*Interface
	generation uuid.UUID
	handler    SensitiveHandler
}

// New prepares an assembler on the given context. It resolves the
// device materials, defines the standard boundary properties once per
// registry (attaching the phonon sensor to the Si-Nb boundary), and
// installs the standard role classifier unless the context already
// carries one. A nil context gets fresh in-memory sinks.
func New(ctx *BuildContext) (*Assembler, error) {
	if ctx == nil {
		ctx = NewBuildContext()
	}
	a := &Assembler{ctx: ctx, state: Uninitialized}

	if err := a.defineMaterials(); err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}

	if ctx.Registry.Len() == 0 {
		set, err := boundary.DefineStandardProperties(ctx.Registry)
		if err != nil {
			return nil, fmt.Errorf("device: %w", err)
		}
		a.set = set
	} else {
		nb := ctx.Registry.Lookup(boundary.SiNbInterface)
		cu := ctx.Registry.Lookup(boundary.SiCopperInterface)
		vac := ctx.Registry.Lookup(boundary.SiVacuumInterface)
		if nb == nil || cu == nil || vac == nil {
			return nil, fmt.Errorf("device: registry lacks the standard boundary properties")
		}
		a.set = boundary.StandardSet{SiNb: nb.ID, SiCopper: cu.ID, SiVacuum: vac.ID}
	}

	if ctx.Classifier == nil {
		ctx.Classifier = boundary.StandardClassifier(a.set)
	}
	return a, nil
}

// defineMaterials resolves every material the build will touch. The
// blueprints resolve vacuum, niobium and copper through the catalog
// again during instantiation; failing here keeps a missing material
// from surfacing mid-build.
func (a *Assembler) defineMaterials() error {
	var err error
	if a.mats.helium, err = a.ctx.Materials.Find(material.LiquidHelium); err != nil {
		return err
	}
	if a.mats.silicon, err = a.ctx.Materials.Find(material.Silicon); err != nil {
		return err
	}
	if a.mats.niobium, err = a.ctx.Materials.Find(material.Niobium); err != nil {
		return err
	}
	if _, err = a.ctx.Materials.Find(material.Vacuum); err != nil {
		return err
	}
	_, err = a.ctx.Materials.Find(material.Copper)
	return err
}

// State returns the assembler lifecycle state.
func (a *Assembler) State() BuildState {
	return a.state
}

// Substrate returns the silicon chip of the last build, or nil.
func (a *Assembler) Substrate() *assembly.Volume {
	return a.substrate
}

// Generation identifies the last completed build.
func (a *Assembler) Generation() string {
	return a.generation.String()
}

// Properties returns the ids of the standard boundary properties.
func (a *Assembler) Properties() boundary.StandardSet {
	return a.set
}

// InterfaceNames returns the interface names of the last build in
// definition order.
func (a *Assembler) InterfaceNames() []string {
	names := make([]string, len(a.interfaces))
	for i, iface := range a.interfaces {
		names[i] = iface.Name
	}
	return names
}

// AttachSensor binds a sensor model to a boundary property through the
// registry. Attachment is idempotent and a zero id is a no-op.
func (a *Assembler) AttachSensor(id boundary.PropertyID, params boundary.SensorParams) {
	a.ctx.Registry.AttachSensor(id, params)
}

// SetSensorHandler installs the callback registered with the sensitive
// sink. On a built device the substrate is re-registered immediately;
// otherwise the next Build picks it up.
func (a *Assembler) SetSensorHandler(h SensitiveHandler) {
	a.handler = h
	if a.state == Built && a.substrate != nil {
		a.ctx.Sensitive.Register(a.substrate, h)
	}
}

// Result is a snapshot of the last build.
type Result struct {
	Generation string
	State      BuildState
	Volumes    int
	ByRole     map[material.Role]int
	Interfaces []*Interface
}

// Result summarizes the assembler's current geometry and interfaces.
func (a *Assembler) Result() Result {
	ifaces := make([]*Interface, len(a.interfaces))
	copy(ifaces, a.interfaces)
	return Result{
		Generation: a.generation.String(),
		State:      a.state,
		Volumes:    a.ctx.Placements.Len(),
		ByRole:     a.ctx.Placements.CountByRole(),
		Interfaces: ifaces,
	}
}

// ---------------------------------------------------------------------------
// Build
// ---------------------------------------------------------------------------

// Build tears down the previous generation and constructs the device
// selected by cfg. It returns the world volume. On error the assembler
// stays Uninitialized; the next Build clears any partial residue.
func (a *Assembler) Build(cfg Config) (*assembly.Volume, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Teardown before any new registration. Reset also clears residue
	// left by a failed build.
	a.ctx.Reset()
	a.state = Uninitialized
	a.world = nil
	a.substrate = nil
	a.interfaces = nil

	if err := a.construct(cfg); err != nil {
		return nil, err
	}

	a.generation = uuid.New()
	a.state = Built
	logrus.Debugf("device: generation %s built: %d volumes, %d interfaces",
		a.generation, a.ctx.Placements.Len(), len(a.interfaces))
	return a.world, nil
}

func (a *Assembler) construct(cfg Config) error {
	world, err := a.ctx.Placements.Place(
		shape.Box{DX: WorldDim, DY: WorldDim, DZ: WorldDim},
		geom.IdentityTransform(), nil, "world", a.mats.helium, false)
	if err != nil {
		return err
	}
	a.world = world

	chip, err := a.ctx.Placements.Place(
		shape.Box{DX: SiliconChipDimX, DY: SiliconChipDimY, DZ: SiliconChipDimZ},
		geom.Translate(geom.Vec3{Z: siliconChipZ}), world, "siliconChip", a.mats.silicon, true)
	if err != nil {
		return err
	}
	a.substrate = chip

	if err := a.wireVolume("world", world); err != nil {
		return err
	}
	if err := a.wireVolume("siliconChip", chip); err != nil {
		return err
	}

	a.ctx.Lattice.Register(chip, MillerOrientation{H: 1})
	a.ctx.Sensitive.Register(chip, a.handler)

	if cfg.UseQubitHousing {
		housing := parts.Housing{
			Label: "qubitHousing",
			DimX:  HousingDimX, DimY: HousingDimY, DimZ: HousingDimZ,
		}
		// The housing box is not carved out around the chip recess, so
		// the sibling check would flag the chip sitting inside it.
		if err := a.instantiate(housing, world, geom.IdentityTransform(), false); err != nil {
			return err
		}
	}

	if !cfg.UseGroundPlane {
		return nil
	}
	return a.constructGroundPlane(cfg)
}

func (a *Assembler) constructGroundPlane(cfg Config) error {
	gp, err := a.ctx.Placements.Place(
		shape.Box{DX: GroundPlaneDimX, DY: GroundPlaneDimY, DZ: GroundPlaneDimZ},
		geom.Translate(geom.Vec3{Z: groundPlaneZ}), a.world, "groundPlane", a.mats.niobium, true)
	if err != nil {
		return err
	}
	if err := a.wireVolume("groundPlane", gp); err != nil {
		return err
	}

	if cfg.UseTransmissionLine {
		line := parts.TransmissionLine{Label: "transmissionLine"}
		if err := a.instantiate(line, gp, geom.IdentityTransform(), true); err != nil {
			return err
		}
	}
	if cfg.UseResonatorAssembly {
		if err := a.buildResonatorRows(gp, cfg.ResonatorCount); err != nil {
			return err
		}
	}
	if cfg.UseFluxLines {
		if err := a.buildFluxLines(gp, cfg.fluxVariant()); err != nil {
			return err
		}
	}
	if cfg.UseQubitElements {
		if err := a.buildQubitElements(gp); err != nil {
			return err
		}
	}
	return nil
}

// buildResonatorRows hangs count assemblies off the transmission line,
// the first half above it and the rest mirrored below. Each row is
// centered with the top row pushed +X and the bottom row -X by the
// central offset.
func (a *Assembler) buildResonatorRows(gp *assembly.Volume, count int) error {
	nTop := (count + 1) / 2
	nBot := count - nTop
	for k := 0; k < nTop; k++ {
		x := ResonatorLateralSpacing*(float64(k)-float64(nTop-1)/2) + CentralResonatorOffsetX
		bp := parts.ResonatorAssembly{Label: fmt.Sprintf("resonatorAssembly%d", k)}
		at := geom.Translate(geom.Vec3{X: x, Y: resonatorAssemblyOffsetY})
		if err := a.instantiate(bp, gp, at, true); err != nil {
			return err
		}
	}
	for j := 0; j < nBot; j++ {
		x := ResonatorLateralSpacing*(float64(j)-float64(nBot-1)/2) - CentralResonatorOffsetX
		bp := parts.ResonatorAssembly{Label: fmt.Sprintf("resonatorAssembly%d", nTop+j)}
		at := geom.At(geom.RotateZ(180), geom.Vec3{X: x, Y: -resonatorAssemblyOffsetY})
		if err := a.instantiate(bp, gp, at, true); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) buildFluxLines(gp *assembly.Volume, variant string) error {
	top := fluxBlueprint(variant, "topFluxLine")
	at := geom.Translate(geom.Vec3{X: topFluxLineOffsetX, Y: topFluxLineOffsetY})
	if err := a.instantiate(top, gp, at, true); err != nil {
		return err
	}
	bottom := fluxBlueprint(variant, "bottomFluxLine")
	at = geom.At(geom.RotateZ(180), geom.Vec3{X: bottomFluxLineOffsetX, Y: -bottomFluxLineOffsetY})
	return a.instantiate(bottom, gp, at, true)
}

func fluxBlueprint(variant, label string) assembly.Blueprint {
	switch variant {
	case FluxVariantStraight:
		return parts.StraightFluxLine{Label: label}
	case FluxVariantCorner:
		return parts.CornerFluxLine{Label: label}
	default:
		return parts.CurveFluxLine{Label: label}
	}
}

// buildQubitElements places the fixed qubit-adjacent elements at their
// design coordinates, then the chained feed run next to the first
// transmon.
func (a *Assembler) buildQubitElements(gp *assembly.Volume) error {
	sites := []struct {
		bp assembly.Blueprint
		at geom.Transform
	}{
		{parts.Transmon{Label: "topTransmon"}, geom.Translate(topTransmonAt)},
		{parts.Transmon{Label: "bottomTransmon"}, geom.Translate(bottomTransmonAt)},
		{parts.Xmon{Label: "topXmon"}, geom.Translate(topXmonAt)},
		{parts.Xmon{Label: "bottomXmon"}, geom.At(geom.RotateX(180), bottomXmonAt)},
		{parts.Resonator{Label: "topResonator0"}, geom.Translate(topResonator0At)},
		{parts.Resonator{Label: "topResonator1"}, geom.Translate(topResonator1At)},
		{parts.Resonator{Label: "bottomResonator0"}, geom.At(geom.RotateZ(180), bottomResonator0At)},
		{parts.Resonator{Label: "bottomResonator1"}, geom.At(geom.RotateZ(180), bottomResonator1At)},
	}
	for _, site := range sites {
		if err := a.instantiate(site.bp, gp, site.at, true); err != nil {
			return err
		}
	}
	return a.buildFeedChain(gp)
}

// buildFeedChain folds the canonical feed run and instantiates one
// segment blueprint per fold frame directly in the ground plane.
func (a *Assembler) buildFeedChain(gp *assembly.Volume) error {
	chain, err := shape.FoldChain(shape.StartAnchor(chainAnchorAt, chainHeadingDeg), chainSegments)
	if err != nil {
		return err
	}
	for i, pl := range chain.Placements {
		label := fmt.Sprintf("chainSegment%d", i)
		var bp assembly.Blueprint
		switch seg := pl.Segment.(type) {
		case shape.StraightSegment:
			bp = parts.Straight{Label: label, Length: seg.Length}
		case shape.CurveSegment:
			bp = parts.Curve{Label: label, Radius: seg.Radius, TurnDeg: seg.TurnDeg}
		}
		if err := a.instantiate(bp, gp, pl.Frame, true); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Wiring
// ---------------------------------------------------------------------------

// instantiate builds a blueprint under parent and wires every catalog
// entry.
func (a *Assembler) instantiate(bp assembly.Blueprint, parent *assembly.Volume, at geom.Transform, checkOverlaps bool) error {
	asm, err := assembly.Instantiate(bp, assembly.Env{
		Parent:        parent,
		At:            at,
		Materials:     a.ctx.Materials,
		Placer:        a.ctx.Placements,
		CheckOverlaps: checkOverlaps,
	})
	if err != nil {
		return err
	}
	return a.wireAssembly(asm)
}

// wireAssembly runs the classify-and-wire loop over a catalog. Every
// classifiable leaf gets exactly one interface against the substrate.
func (a *Assembler) wireAssembly(asm *assembly.Assembly) error {
	for _, entry := range asm.Catalog {
		if err := a.wireVolume(entry.Name, entry.Volume); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) wireVolume(name string, v *assembly.Volume) error {
	id, need, err := a.ctx.Classifier.Classify(v.Material.Role)
	if err != nil {
		return fmt.Errorf("leaf %q: %w", name, err)
	}
	if !need {
		return nil
	}
	iface, err := a.ctx.Boundaries.Define("border_siliconChip_"+name, a.substrate, v, id)
	if err != nil {
		return err
	}
	a.interfaces = append(a.interfaces, iface)
	return nil
}
