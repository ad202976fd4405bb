package address_test

import (
	"fmt"

	"github.com/zostay/go-mailutil/address"
)

func ExampleParseList() {
	l, err := address.ParseList(`"Bob Smith" <bob@example.com>, alice@example.com`)
	if err != nil {
		panic(err)
	}

	for _, e := range l {
		fmt.Printf("%q %v %s\n", e.Name, e.HasName, e.Address)
	}
	// Output:
	// "Bob Smith" true bob@example.com
	// "" false alice@example.com
}

func ExampleFormatList() {
	fmt.Println(address.FormatList(address.List{
		address.New("a@x.com"),
		address.NewNamed("B", "b@x.com"),
		address.NewNamed(`Na"me`, "c@x.com"),
	}))
	// Output: a@x.com, B <b@x.com>, "Na\"me" <c@x.com>
}
