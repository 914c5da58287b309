package seed

import "fmt"

// Item es una entrada base de un catálogo de seeding.
type Item struct {
	Name     string
	Category string
}

// Catalog agrupa los ítems con su plantilla de descripción.
type Catalog struct {
	Name        string
	Items       []Item
	Description func(Item) string
}

var Perfumes = Catalog{
	Name: "perfume",
	Items: perfumeItems([]string{
		"Xerjoff Naxos", "Xerjoff Alexandria II", "Xerjoff Uden", "Xerjoff Erba Pura",
		"Xerjoff Kobe", "Xerjoff Mefisto", "Xerjoff Lira", "Xerjoff Casamorati 1888",
		"Xerjoff Accento", "Xerjoff More Than Words", "Xerjoff Ouverture", "Xerjoff Symphonium",
		"Xerjoff Italica", "Xerjoff Dama Bianca", "Xerjoff La Tosca", "Xerjoff Fiero",
		"Xerjoff Gran Ballo", "Xerjoff Bouquet Ideale", "Xerjoff Dolce Amalfi", "Xerjoff Dama Bianca",
		"Xerjoff Laylati", "Xerjoff Shooting Stars", "Xerjoff Cruz del Sur II", "Xerjoff Lua",
		"Xerjoff XJ 1861 Renaissance", "Xerjoff XJ 1861 Zefiro", "Xerjoff XJ 1861 Naxos",
		"Xerjoff XJ 1861 Decas", "Xerjoff XJ 1861 Magos", "Xerjoff XJ 1861 Regio",
		"Xerjoff XJ 1861 X", "Xerjoff XJ 1861 Amber Star", "Xerjoff XJ 1861 Star Musk",
		"Xerjoff XJ 1861 Oud Stars", "Xerjoff XJ 1861 Alexandria Orientale",
		"Xerjoff XJ 1861 Alexandria III", "Xerjoff XJ 1861 Alexandria IV",
		"Xerjoff XJ 1861 Alexandria V", "Xerjoff XJ 1861 Alexandria VI",
		"Xerjoff XJ 1861 Alexandria VII", "Xerjoff XJ 1861 Alexandria VIII",
		"Xerjoff XJ 1861 Alexandria IX", "Xerjoff XJ 1861 Alexandria X",
		"Xerjoff XJ 1861 Alexandria XI", "Xerjoff XJ 1861 Alexandria XII",
		"Xerjoff XJ 1861 Alexandria XIII", "Xerjoff XJ 1861 Alexandria XIV",
		"Xerjoff XJ 1861 Alexandria XV",
	}),
	Description: func(it Item) string {
		return fmt.Sprintf("Luxurious %s (%s) by Xerjoff. Experience the finest in perfumery.", it.Name, it.Category)
	},
}

var Merch = Catalog{
	Name: "merch",
	Items: []Item{
		{"Gawr Gura Plush", "Hololive"},
		{"Houshou Marine Acrylic Stand", "Hololive"},
		{"Usada Pekora Keychain", "Hololive"},
		{"Shirakami Fubuki Hoodie", "Hololive"},
		{"Inugami Korone Tapestry", "Hololive"},
		{"Poppin'Party Live Blu-ray", "BanG Dream!"},
		{"Roselia Band T-Shirt", "BanG Dream!"},
		{"Afterglow Towel", "BanG Dream!"},
		{"Hello, Happy World! Badge Set", "BanG Dream!"},
		{"Pastel*Palettes Light Stick", "BanG Dream!"},
		{"Happy Around! Cap", "D4DJ"},
		{"Peaky P-key Jacket", "D4DJ"},
		{"Photon Maiden Poster", "D4DJ"},
		{"Merm4id Tote Bag", "D4DJ"},
		{"Lyrical Lily Mug", "D4DJ"},
		{"u's Nendoroid Set", "Love Live!"},
		{"Aqours Mikan Cushion", "Love Live!"},
		{"Nijigasaki Photo Album", "Love Live!"},
		{"Liella! Concert Penlight", "Love Live!"},
		{"School Idol Festival Card Binder", "Love Live!"},
	},
	Description: func(it Item) string {
		return fmt.Sprintf("Official %s from %s. Perfect for fans and collectors!", it.Name, it.Category)
	},
}

// CharacterNames son los nombres usados para sembrar usuarios.
var CharacterNames = []string{
	"Gawr Gura", "Houshou Marine", "Shirakami Fubuki", "Minato Aqua", "Tokino Sora",
	"Amane Kanata", "Kiryu Coco", "Usada Pekora", "Inugami Korone", "Natsuiro Matsuri",
	"Kasumi Toyama", "Ran Mitake", "Aya Maruyama", "Kokoro Tsurumaki", "Rinko Shirokane",
	"Hina Hikawa", "Yukina Minato", "Arisa Ichigaya", "Saya Yamabuki", "Eve Wakamiya",
	"Rinku Aimoto", "Maho Akashi", "Muni Ohnaruto", "Rei Togetsu",
	"Kyoko Yamate", "Shinobu Inuyose", "Haruna Kasuga", "Tsubaki Aoyagi",
	"Miiko Takeshita", "Esora Shimizu",
	"Honoka Kousaka", "Umi Sonoda", "Kotori Minami", "Eli Ayase", "Nico Yazawa",
	"Chika Takami", "Riko Sakurauchi", "You Watanabe", "Ruby Kurosawa", "Dia Kurosawa",
	"Ayumu Uehara", "Kasumi Nakasu", "Setsuna Yuki", "Karin Asaka", "Ai Miyashita",
}

// Catalogs devuelve el catálogo por nombre.
func Catalogs(name string) (Catalog, bool) {
	switch name {
	case Perfumes.Name:
		return Perfumes, true
	case Merch.Name:
		return Merch, true
	default:
		return Catalog{}, false
	}
}

func perfumeItems(names []string) []Item {
	items := make([]Item, len(names))
	for i, n := range names {
		items[i] = Item{Name: n, Category: "Eau de Parfum"}
	}
	return items
}
