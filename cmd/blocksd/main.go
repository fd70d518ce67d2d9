// Command blocksd generates a voxel world, meshes every populated chunk
// through the worker pool, and — if -listen is set — serves each chunk's
// compressed wire form to any client that connects. This is the minimal
// external-facing surface spec §6 describes: no window, no GL context,
// no entity runtime, all of which stay external collaborators.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelstack/blocks/internal/chunk"
	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/mesher"
	"github.com/voxelstack/blocks/internal/protocol"
	"github.com/voxelstack/blocks/internal/terrain"
	"github.com/voxelstack/blocks/internal/voxel"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "world generation seed")
	debug := flag.Bool("debug", false, "use the smaller debug grid size instead of the release size")
	workers := flag.Int("workers", mesher.DefaultWorkerCount, "number of mesher worker goroutines")
	listen := flag.String("listen", "", "address to serve generated chunks on (empty disables the server)")
	spawnX := flag.Float64("spawn-x", 0, "world-space x of the spawn point chunks are prioritized around")
	spawnY := flag.Float64("spawn-y", float64(coord.WaterLevel), "world-space y of the spawn point")
	spawnZ := flag.Float64("spawn-z", 0, "world-space z of the spawn point")
	flag.Parse()

	palette, err := voxel.DefaultLoad()
	if err != nil {
		log.Fatalf("blocksd: load palette: %v", err)
	}

	side := int32(coord.ChunksPerSideRelease)
	if *debug {
		side = coord.ChunksPerSideDebug
	}

	grid := chunk.NewGrid(side, palette.IDOfCommon(voxel.CommonAir))
	gen := terrain.NewGenerator(*seed, palette, side)

	fmt.Printf("blocksd: generating a %d x %d column world (seed %d)...\n", side, side, *seed)
	for z := int32(0); z < side; z++ {
		for x := int32(0); x < side; x++ {
			terrain.GenerateColumn(gen, grid, x, z)
		}
	}

	positions := nonEmptyChunks(grid, side)
	fmt.Printf("blocksd: %d of %d chunks are non-empty\n", len(positions), side*side*side)

	spawnWorld := mgl32.Vec3{float32(*spawnX), float32(*spawnY), float32(*spawnZ)}
	spawnChunk := coord.WorldToChunk(spawnWorld)
	spawnOrigin := coord.ChunkToWorld(spawnChunk)
	fmt.Printf("blocksd: spawn %v resolves to chunk %v (origin %v), prioritizing nearby chunks first\n",
		spawnWorld, spawnChunk, spawnOrigin)
	sortByDistanceToChunk(positions, spawnChunk)

	pool := mesher.NewPool(grid, palette, *workers)
	defer pool.Shutdown()

	for _, pos := range positions {
		pool.Submit(pos)
	}

	meshed := drainMeshResults(pool, len(positions))
	fmt.Printf("blocksd: meshed %d/%d submitted chunks\n", meshed, len(positions))

	if *listen == "" {
		return
	}
	if err := serveChunks(*listen, grid, positions); err != nil {
		log.Fatalf("blocksd: serve: %v", err)
	}
}

// nonEmptyChunks scans the grid once, before any mesher worker is
// started, for every chunk whose highestPoint marks it as containing
// real geometry. Doing this scan before NewPool avoids any question of
// concurrent access to Chunk.HighestPoint.
func nonEmptyChunks(grid *chunk.Grid, side int32) []coord.ChunkPos {
	var positions []coord.ChunkPos
	for z := int32(0); z < side; z++ {
		for y := int32(0); y < side; y++ {
			for x := int32(0); x < side; x++ {
				pos := coord.ChunkPos{X: x, Y: y, Z: z}
				if grid.IsPresent(pos) && !grid.ChunkAt(pos).IsEmpty() {
					positions = append(positions, pos)
				}
			}
		}
	}
	return positions
}

// sortByDistanceToChunk orders positions by squared distance to center,
// closest first, so the worker pool meshes chunks near the spawn point
// before distant ones. Mirrors the distance-squared comparison
// Leterax's ChunkManager.RemoveDistantChunks uses to cull far chunks,
// repurposed here to prioritize instead of cull.
func sortByDistanceToChunk(positions []coord.ChunkPos, center coord.ChunkPos) {
	sort.Slice(positions, func(i, j int) bool {
		return distSquared(positions[i], center) < distSquared(positions[j], center)
	})
}

func distSquared(a, b coord.ChunkPos) int64 {
	dx := int64(a.X - b.X)
	dy := int64(a.Y - b.Y)
	dz := int64(a.Z - b.Z)
	return dx*dx + dy*dy + dz*dz
}

// drainMeshResults polls the pool the way a renderer would once per
// frame, until every submitted chunk has produced output or a generous
// timeout elapses.
func drainMeshResults(pool *mesher.Pool, submitted int) int {
	meshed := 0
	deadline := time.Now().Add(30 * time.Second)
	for meshed < submitted && time.Now().Before(deadline) {
		if _, ok := pool.PollResult(); ok {
			meshed++
			continue
		}
		time.Sleep(10 * time.Millisecond)
	}
	return meshed
}

// serveChunks accepts connections and streams every populated chunk to
// each client as a sequence of §6 ChunkData packets, using a plain
// net.Conn the way Leterax's pkg/network/client.go does — no framing
// library, matching SPEC_FULL's decision to leave gorilla/websocket
// unwired.
func serveChunks(addr string, grid *chunk.Grid, positions []coord.ChunkPos) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	defer ln.Close()

	fmt.Printf("blocksd: serving %d chunks on %s\n", len(positions), addr)
	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		go sendChunks(conn, grid, positions)
	}
}

func sendChunks(conn net.Conn, grid *chunk.Grid, positions []coord.ChunkPos) {
	defer conn.Close()

	for _, pos := range positions {
		c := grid.ChunkAt(pos)
		if _, err := conn.Write(protocol.EncodeChunk(pos, c)); err != nil {
			log.Printf("blocksd: write chunk %v to %s: %v", pos, conn.RemoteAddr(), err)
			return
		}
	}
}
