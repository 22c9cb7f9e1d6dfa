package nativeplate

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"planetgen/internal/grid"
)

// libraryPath is resolved once per LibDriver, on its first Create; callers
// can override it via the
// PLANETGEN_PLATE_SOLVER_PATH environment variable for local development or
// CI images that stage the shared library at a non-default location.
func libraryPath() string {
	if p := os.Getenv("PLANETGEN_PLATE_SOLVER_PATH"); p != "" {
		return p
	}
	return defaultLibraryName()
}

// LibDriver binds to the real native plate-tectonics solver via purego's
// dlopen/dlsym, so this package builds without a C toolchain or cgo.
type LibDriver struct {
	once    sync.Once
	openErr error

	lib uintptr

	fnCreate           func(seed int32, w, h uint32, seaLevel float32, erosionPeriod uint32, foldingRatio float32, aggrOverlapAbs uint32, aggrOverlapRel float32, cycleCount, numPlates uint32) uintptr
	fnDestroy          func(handle uintptr)
	fnStep             func(handle uintptr)
	fnIsFinished       func(handle uintptr) int32
	fnGetWidth         func(handle uintptr) uint32
	fnGetHeight        func(handle uintptr) uint32
	fnGetHeightmap     func(handle uintptr) uintptr
	fnGetPlatesMap     func(handle uintptr) uintptr
	fnGetKinematics    func(handle uintptr, out uintptr, count uintptr) uint32
}

func (d *LibDriver) ensureLoaded() error {
	d.once.Do(func() {
		lib, err := purego.Dlopen(libraryPath(), purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			d.openErr = fmt.Errorf("%w: %v", ErrLibraryMissing, err)
			return
		}
		d.lib = lib
		purego.RegisterLibFunc(&d.fnCreate, lib, "create")
		purego.RegisterLibFunc(&d.fnDestroy, lib, "destroy")
		purego.RegisterLibFunc(&d.fnStep, lib, "step")
		purego.RegisterLibFunc(&d.fnIsFinished, lib, "is_finished")
		purego.RegisterLibFunc(&d.fnGetWidth, lib, "get_map_width")
		purego.RegisterLibFunc(&d.fnGetHeight, lib, "get_map_height")
		purego.RegisterLibFunc(&d.fnGetHeightmap, lib, "get_heightmap")
		purego.RegisterLibFunc(&d.fnGetPlatesMap, lib, "get_plates_map")
		purego.RegisterLibFunc(&d.fnGetKinematics, lib, "get_plate_kinematics")
	})
	return d.openErr
}

// Create implements Driver.
func (d *LibDriver) Create(params CreateParams) (Handle, error) {
	lock()
	if err := d.ensureLoaded(); err != nil {
		unlock()
		return nil, err
	}

	h := d.fnCreate(
		int32(params.Seed),
		uint32(params.Width), uint32(params.Height),
		float32(params.SeaLevel),
		uint32(params.ErosionPeriod),
		float32(params.FoldingRatio),
		uint32(params.AggrOverlapAbs),
		float32(params.AggrOverlapRel),
		uint32(params.CycleCount),
		uint32(params.NumPlates),
	)
	if h == 0 {
		unlock()
		return nil, ErrCreateFailed
	}

	return &libHandle{driver: d, handle: h, width: params.Width, height: params.Height}, nil
}

// libHandle owns one native handle for the lifetime of a single Generate
// call. The process mutex acquired in Create is released exactly once, by
// Close, regardless of which exit path the caller takes.
type libHandle struct {
	driver        *LibDriver
	handle        uintptr
	width, height int
	closeOnce     sync.Once
}

func (h *libHandle) RunToCompletion() error {
	for i := 0; i < MaxSteps; i++ {
		if h.driver.fnIsFinished(h.handle) != 0 {
			return nil
		}
		h.driver.fnStep(h.handle)
	}
	if h.driver.fnIsFinished(h.handle) != 0 {
		return nil
	}
	return ErrDidNotConverge
}

func (h *libHandle) Extract() (Extraction, error) {
	w := int(h.driver.fnGetWidth(h.handle))
	ht := int(h.driver.fnGetHeight(h.handle))
	if w == 0 || ht == 0 {
		w, ht = h.width, h.height
	}

	heightPtr := h.driver.fnGetHeightmap(h.handle)
	plate0Ptr := h.driver.fnGetPlatesMap(h.handle)

	heightmap := grid.NewHeightmap(w, ht)
	heightSlice := unsafe.Slice((*float32)(unsafe.Pointer(heightPtr)), w*ht)
	for i, v := range heightSlice {
		heightmap.Values[i] = float64(v)
	}

	plates := grid.NewPlateMap(w, ht)
	plateSlice := unsafe.Slice((*uint32)(unsafe.Pointer(plate0Ptr)), w*ht)
	copy(plates.Values, plateSlice)

	// Kinematics: fetched via a single batched call. The solver is known to
	// sometimes report zero plates even after a successful run; an empty
	// slice here is a valid result, not an error (§9 kinematics-missing
	// quirk).
	const maxPlates = 4096
	raw := make([]rawKinematics, maxPlates)
	count := h.driver.fnGetKinematics(h.handle, uintptr(unsafe.Pointer(&raw[0])), uintptr(maxPlates))

	kinematics := make([]Kinematics, 0, count)
	for i := uint32(0); i < count && i < maxPlates; i++ {
		r := raw[i]
		kinematics = append(kinematics, Kinematics{
			PlateID:           r.PlateID,
			VelocityUnitX:     float64(r.VelUnitX),
			VelocityUnitY:     float64(r.VelUnitY),
			VelocityMagnitude: float64(r.VelMagnitude),
			MassCenterX:       float64(r.MassCenterX),
			MassCenterY:       float64(r.MassCenterY),
		})
	}

	return Extraction{Heightmap: heightmap, Plates: plates, Kinematics: kinematics}, nil
}

func (h *libHandle) Close() error {
	h.closeOnce.Do(func() {
		h.driver.fnDestroy(h.handle)
		unlock()
	})
	return nil
}

// rawKinematics mirrors the native PlateKinematics struct layout for the
// batched get_plate_kinematics call.
type rawKinematics struct {
	PlateID      uint32
	VelUnitX     float32
	VelUnitY     float32
	VelMagnitude float32
	MassCenterX  float32
	MassCenterY  float32
}
