package arrlist

import "fmt"

func ExampleEmpty() {
	l := Empty()
	fmt.Println(l)
	// Output: [ ]
}

func ExampleNew() {
	l := New(1, 2, 3)
	fmt.Println(l)
	// Output: [ 1 2 3 ]
}

func ExampleList_Append() {
	// Append does not modify the list in place.
	l := New(1, 2)
	fmt.Println(l.Append(3))
	fmt.Println(l)
	// Output:
	// [ 1 2 3 ]
	// [ 1 2 ]
}

func ExampleList_Map() {
	l := New(1, 2, 3).Map(func(n int) int { return n * 10 })
	fmt.Println(l)
	// Output: [ 10 20 30 ]
}

func ExampleList_Filter() {
	l := New(1, 2, 3, 4).Filter(func(n int) bool { return n%2 == 0 })
	fmt.Println(l)
	// Output: [ 2 4 ]
}

func ExampleList_Sort() {
	fmt.Println(New(3, 1, 2).Sort())
	// Output: [ 1 2 3 ]
}

func ExampleList_Unique() {
	// The last value of each group wins, at the position of its first
	// occurrence.
	fmt.Println(New(1, 2, 1, 3, 2).Unique())
	// Output: [ 1 2 3 ]
}

func ExampleList_Chunk() {
	chunks := New(1, 2, 3, 4, 5).Chunk(2)
	fmt.Println(chunks)
	// Output: [ [ 1 2 ] [ 3 4 ] [ 5 ] ]
}

func ExampleList_Reduce() {
	sum := New(1, 2, 3).Reduce(func(acc, n int) int { return acc + n }, 0)
	fmt.Println(sum)
	// Output: 6
}
