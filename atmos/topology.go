package atmos

import "github.com/stratosim/miniweather/utils"

// haloMsg carries one direction's worth of packed halo columns: NumVars
// variables, each nz rows by HaloSize columns, flattened row-major.
type haloMsg struct {
	data []float64
}

// reduceMsg carries one rank's locally reduced mass and total-energy sums.
type reduceMsg struct {
	mass, energy float64
}

// Topology lays the global grid out over a ring of ranks and gives each rank
// the mailboxes it needs to talk to its neighbors: a fixed star/ring wiring
// built once at startup instead of being assembled ad hoc per call site.
type Topology struct {
	np int
	pm *utils.PartitionMap

	haloRecvLeft  []*utils.Mailbox[haloMsg]
	haloRecvRight []*utils.Mailbox[haloMsg]

	reduceToRoot []*utils.Mailbox[reduceMsg]
}

// NewTopology partitions nxGlob columns across np ranks and allocates the
// fixed set of mailboxes every rank will use for the lifetime of the run.
func NewTopology(np, nxGlob int) *Topology {
	t := &Topology{
		np:            np,
		pm:            utils.NewPartitionMap(np, nxGlob),
		haloRecvLeft:  make([]*utils.Mailbox[haloMsg], np),
		haloRecvRight: make([]*utils.Mailbox[haloMsg], np),
		reduceToRoot:  make([]*utils.Mailbox[reduceMsg], np),
	}
	for r := 0; r < np; r++ {
		t.haloRecvLeft[r] = utils.NewMailbox[haloMsg]()
		t.haloRecvRight[r] = utils.NewMailbox[haloMsg]()
		t.reduceToRoot[r] = utils.NewMailbox[reduceMsg]()
	}
	return t
}

// Ranks returns the number of ranks in the ring.
func (t *Topology) Ranks() int { return t.np }

// Neighbors returns the left and right neighbor rank ids of rank r under
// periodic wraparound, the only topology this system ever builds (x is
// always periodic; z decomposition never occurs, see §3).
func (t *Topology) Neighbors(r int) (left, right int) {
	left = (r - 1 + t.np) % t.np
	right = (r + 1) % t.np
	return
}

// ColumnRange returns [xBeg, xEnd) of rank r's interior columns within the
// global grid.
func (t *Topology) ColumnRange(r int) (xBeg, xEnd int) {
	return t.pm.GetBucketRange(r)
}

// LocalNx returns the number of interior columns owned by rank r.
func (t *Topology) LocalNx(r int) int {
	return t.pm.GetBucketDimension(r)
}
