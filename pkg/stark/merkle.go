package stark

import (
	"lukechampine.com/blake3"

	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

func hashLeaf(b []byte) [32]byte {
	return blake3.Sum256(append([]byte{0x00}, b...))
}

func hashNode(left, right [32]byte) [32]byte {
	buf := make([]byte, 0, 65)
	buf = append(buf, 0x01)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return blake3.Sum256(buf)
}

// merkleTree is a binary Blake3 Merkle tree over a power-of-two number
// of leaves, grounded on the sha256 tree used for FRI-layer
// authentication in the precompile reference this package generalises.
type merkleTree struct {
	levels [][][32]byte // levels[0] = leaves, levels[last] = {root}
}

func buildMerkleTree(leaves [][]byte) *merkleTree {
	level := make([][32]byte, len(leaves))
	for i, l := range leaves {
		level[i] = hashLeaf(l)
	}
	levels := [][][32]byte{level}
	for len(level) > 1 {
		next := make([][32]byte, len(level)/2)
		for i := range next {
			next[i] = hashNode(level[2*i], level[2*i+1])
		}
		levels = append(levels, next)
		level = next
	}
	return &merkleTree{levels: levels}
}

func (t *merkleTree) Root() [32]byte { return t.levels[len(t.levels)-1][0] }

// Prove returns the sibling path from leaf index to the root.
func (t *merkleTree) Prove(index int) [][32]byte {
	path := make([][32]byte, 0, len(t.levels)-1)
	idx := index
	for lvl := 0; lvl < len(t.levels)-1; lvl++ {
		sibling := idx ^ 1
		path = append(path, t.levels[lvl][sibling])
		idx /= 2
	}
	return path
}

// verifyMerklePath checks that leaf, opened at index under path, hashes
// up to root.
func verifyMerklePath(root [32]byte, leaf []byte, index int, path [][32]byte) bool {
	cur := hashLeaf(leaf)
	idx := index
	for _, sibling := range path {
		if idx%2 == 0 {
			cur = hashNode(cur, sibling)
		} else {
			cur = hashNode(sibling, cur)
		}
		idx /= 2
	}
	return cur == root
}

func encodeMerklePath(path [][32]byte) []byte {
	out := make([]byte, 0, len(path)*32)
	for _, h := range path {
		out = append(out, h[:]...)
	}
	return out
}

func decodeMerklePath(b []byte, depth int) ([][32]byte, error) {
	if len(b) != depth*32 {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "stark: merkle path wrong length")
	}
	path := make([][32]byte, depth)
	for i := 0; i < depth; i++ {
		copy(path[i][:], b[i*32:(i+1)*32])
	}
	return path, nil
}
