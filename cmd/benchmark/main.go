package main

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	ksuid "github.com/jjatria/data-ksuid"
)

func main() {
	fmt.Println("KSUID Benchmark")
	fmt.Println("===============")
	fmt.Printf("Go %s on %s/%s, %d cores\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	fmt.Println()

	runGenerationBenchmark()
	runBatchBenchmark()
	runStringBenchmark()
	runOrderingTest()
	runCollisionTest()
	runSortingComparison()
}

func runGenerationBenchmark() {
	fmt.Println("Generation Performance")
	fmt.Println("---------------------")

	const iterations = 500000

	seq := ksuid.NewSequence()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"KSUID", func() error {
			_, err := ksuid.NewRandom()
			return err
		}},
		{"KSUID Seq", func() error {
			_, err := seq.Generate()
			return err
		}},
		{"UUID v4", func() error {
			_ = uuid.New()
			return nil
		}},
		{"ULID", func() error {
			_ = ulid.Make()
			return nil
		}},
	}

	for _, test := range tests {
		// Warmup
		for i := 0; i < 1000; i++ {
			test.fn()
		}

		start := time.Now()
		for i := 0; i < iterations; i++ {
			if err := test.fn(); err != nil {
				log.Printf("Error in %s: %v", test.name, err)
			}
		}
		elapsed := time.Since(start)

		opsPerSec := float64(iterations) / elapsed.Seconds()
		nsPerOp := elapsed.Nanoseconds() / int64(iterations)

		fmt.Printf("%-12s %8.0f ops/sec  %6d ns/op\n", test.name, opsPerSec, nsPerOp)
	}
	fmt.Println()
}

func runBatchBenchmark() {
	fmt.Println("Batch Generation")
	fmt.Println("----------------")

	sizes := []int{100, 1000, 10000}

	for _, size := range sizes {
		fmt.Printf("Batch size %d:\n", size)

		seq := ksuid.NewSequence()
		start := time.Now()
		_, err := seq.GenerateBatch(size)
		if err != nil {
			log.Printf("Batch error: %v", err)
			continue
		}
		elapsed := time.Since(start)

		rate := float64(size) / elapsed.Seconds()
		fmt.Printf("  KSUID: %8.0f IDs/sec\n", rate)

		// UUID has no batch generation, so single generation
		start = time.Now()
		for i := 0; i < size; i++ {
			_ = uuid.New()
		}
		elapsed = time.Since(start)
		rate = float64(size) / elapsed.Seconds()
		fmt.Printf("  UUID:  %8.0f IDs/sec\n", rate)
		fmt.Println()
	}
}

func runStringBenchmark() {
	fmt.Println("String Operations")
	fmt.Println("-----------------")

	const iterations = 50000

	id := ksuid.New()
	str := id.String()

	start := time.Now()
	for i := 0; i < iterations; i++ {
		_ = id.String()
	}
	encodeTime := time.Since(start)

	start = time.Now()
	for i := 0; i < iterations; i++ {
		_, err := ksuid.Parse(str)
		if err != nil {
			log.Printf("Parse error: %v", err)
		}
	}
	parseTime := time.Since(start)

	encodeRate := float64(iterations) / encodeTime.Seconds()
	parseRate := float64(iterations) / parseTime.Seconds()

	fmt.Printf("String encode: %8.0f ops/sec\n", encodeRate)
	fmt.Printf("String parse:  %8.0f ops/sec\n", parseRate)
	fmt.Printf("String length: %d chars\n", len(str))
	fmt.Println()
}

func runOrderingTest() {
	fmt.Println("Temporal Ordering")
	fmt.Println("-----------------")

	const count = 5000
	seq := ksuid.NewSequence()

	ids, err := seq.GenerateBatch(count)
	if err != nil {
		log.Printf("Batch error: %v", err)
		return
	}

	fmt.Printf("Generated %d IDs\n", count)
	fmt.Printf("Naturally ordered: %v\n", ksuid.IsSorted(ids))

	// Shuffle the string forms and sort them back
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	rand.Shuffle(len(strs), func(i, j int) {
		strs[i], strs[j] = strs[j], strs[i]
	})

	start := time.Now()
	sort.Strings(strs)
	sortTime := time.Since(start)

	// String sort must reproduce generation order
	recovered := true
	for i, s := range strs {
		if s != ids[i].String() {
			recovered = false
			break
		}
	}

	fmt.Printf("String sort time: %v\n", sortTime)
	fmt.Printf("Sort recovers generation order: %v\n", recovered)
	fmt.Println()
}

func runCollisionTest() {
	fmt.Println("Collision Test")
	fmt.Println("--------------")

	const count = 500000
	seen := make(map[string]bool, count)
	collisions := 0

	start := time.Now()
	for i := 0; i < count; i++ {
		id := ksuid.New().String()
		if seen[id] {
			collisions++
		}
		seen[id] = true
	}
	elapsed := time.Since(start)

	fmt.Printf("Generated %d IDs in %v\n", count, elapsed)
	fmt.Printf("Collisions: %d\n", collisions)
	fmt.Println()
}

func runSortingComparison() {
	fmt.Println("Sorting Comparison")
	fmt.Println("------------------")

	const count = 100000

	ksuids := make([]string, count)
	uuids := make([]string, count)
	ulids := make([]string, count)

	for i := 0; i < count; i++ {
		ksuids[i] = ksuid.New().String()
		uuids[i] = uuid.New().String()
		ulids[i] = ulid.Make().String()
	}

	tests := []struct {
		name string
		ids  []string
	}{
		{"KSUID", ksuids},
		{"UUID v4", uuids},
		{"ULID", ulids},
	}

	for _, test := range tests {
		rand.Shuffle(len(test.ids), func(i, j int) {
			test.ids[i], test.ids[j] = test.ids[j], test.ids[i]
		})

		start := time.Now()
		sort.Strings(test.ids)
		elapsed := time.Since(start)

		fmt.Printf("%-8s sort of %d IDs: %v\n", test.name, count, elapsed)
	}
	fmt.Println()
}
