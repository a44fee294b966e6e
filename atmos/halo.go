package atmos

// ExchangeHalo fills q's x-direction ghost columns from r's ring neighbors
// and enforces the rigid z boundary on q. It must be called by every rank in
// the ring each time it is invoked, since the mailbox rendezvous blocks
// until both neighbors have posted (§4.4). The integrator calls this once
// per RK sub-stage on that stage's forcing buffer, never only on Primary.
func (r *Rank) ExchangeHalo(q *State) {
	r.exchangeX(q)
	r.enforceZ(q)
	if r.Scn.Name == "injection" {
		r.applyInjectionInflow(q)
	}
}

// exchangeX packs q's two interior edge blocks, posts them to r's
// neighbors' inboxes, and waits for the matching blocks coming back the
// other way, then unpacks them into q's left/right ghost columns.
func (r *Rank) exchangeX(q *State) {
	toLeftNeighbor := packColumns(q, r.Nz, HaloSize, HaloSize)
	toRightNeighbor := packColumns(q, r.Nz, r.Nx, HaloSize)

	r.topo.haloRecvRight[r.Left].Post(haloMsg{data: toLeftNeighbor})
	r.topo.haloRecvLeft[r.Right].Post(haloMsg{data: toRightNeighbor})

	fromLeft := r.topo.haloRecvLeft[r.ID].Wait()
	fromRight := r.topo.haloRecvRight[r.ID].Wait()

	unpackColumns(q, r.Nz, 0, HaloSize, fromLeft.data)
	unpackColumns(q, r.Nz, r.Nx+HaloSize, HaloSize, fromRight.data)
}

// packColumns flattens `width` interior columns starting at local column
// colBeg across all NumVars variables and all nz rows, row-major within each
// variable, variables concatenated in DENS,UMOM,WMOM,RHOT order.
func packColumns(q *State, nz, colBeg, width int) []float64 {
	buf := make([]float64, 0, NumVars*nz*width)
	for n := 0; n < NumVars; n++ {
		v := q.Vars[n]
		for k := 0; k < nz; k++ {
			for c := 0; c < width; c++ {
				buf = append(buf, v.At(k+HaloSize, colBeg+c))
			}
		}
	}
	return buf
}

// unpackColumns is the inverse of packColumns, writing into `width` ghost
// columns starting at local column colBeg.
func unpackColumns(q *State, nz, colBeg, width int, buf []float64) {
	idx := 0
	for n := 0; n < NumVars; n++ {
		v := q.Vars[n]
		for k := 0; k < nz; k++ {
			for c := 0; c < width; c++ {
				v.Set(k+HaloSize, colBeg+c, buf[idx])
				idx++
			}
		}
	}
}

// enforceZ reflects the top and bottom boundaries of q: vertical momentum
// halos are zeroed; x-momentum halos are extrapolated from the nearest
// interior row scaled to preserve mass flux against the background density
// ratio; density and density*theta halos copy the nearest interior row flat
// (§4.4 rigid-lid boundary).
func (r *Rank) enforceZ(q *State) {
	bottomInterior := HaloSize
	topInterior := r.Nz + HaloSize - 1
	umom := q.Vars[UMOM]

	for i := 0; i < r.Nx+2*HaloSize; i++ {
		for h := 0; h < HaloSize; h++ {
			bottomHalo := HaloSize - 1 - h
			topHalo := r.Nz + HaloSize + h

			umom.Set(bottomHalo, i, umom.At(bottomInterior, i)*r.Bg.CellRho[bottomHalo]/r.Bg.CellRho[bottomInterior])
			umom.Set(topHalo, i, umom.At(topInterior, i)*r.Bg.CellRho[topHalo]/r.Bg.CellRho[topInterior])
		}
	}

	for _, n := range []int{DENS, RHOT} {
		v := q.Vars[n]
		for i := 0; i < r.Nx+2*HaloSize; i++ {
			for h := 0; h < HaloSize; h++ {
				v.Set(HaloSize-1-h, i, v.At(bottomInterior, i))
				v.Set(r.Nz+HaloSize+h, i, v.At(topInterior, i))
			}
		}
	}

	wmom := q.Vars[WMOM]
	for i := 0; i < r.Nx+2*HaloSize; i++ {
		wmom.Set(0, i, 0)
		wmom.Set(1, i, 0)
		wmom.Set(r.Nz+HaloSize, i, 0)
		wmom.Set(r.Nz+HaloSize+1, i, 0)
	}
}

// applyInjectionInflow overrides the leftmost rank's left-halo cells of q
// with a fixed 50 m/s, 298 K jet over the vertical band centered on
// 3*zlen/4 with half-width zlen/16, active only for the injection scenario
// (§4.4, §5 data_spec=6). It must run after exchangeX, not before: it
// modifies halo cells the generic routine just filled.
func (r *Rank) applyInjectionInflow(q *State) {
	if r.ID != 0 {
		return
	}
	const (
		uInflow     = 50.
		thetaInflow = 298.
		zCenter     = 3 * ZLen / 4
		zHalfWidth  = ZLen / 16
	)
	dens := q.Vars[DENS]
	umom := q.Vars[UMOM]
	rhot := q.Vars[RHOT]
	for k := 0; k < r.Nz; k++ {
		z := (float64(k) + 0.5) * r.Dz
		if z < zCenter-zHalfWidth || z > zCenter+zHalfWidth {
			continue
		}
		row := k + HaloSize
		rhoBar := r.Bg.CellRho[row]
		rhoThetaBar := r.Bg.CellRhoTheta[row]
		for h := 0; h < HaloSize; h++ {
			rhoFull := dens.At(row, h) + rhoBar
			umom.Set(row, h, rhoFull*uInflow)
			rhot.Set(row, h, rhoFull*thetaInflow-rhoThetaBar)
		}
	}
}
