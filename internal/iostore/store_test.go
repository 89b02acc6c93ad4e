package iostore_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnpin/internal/iostore"
	"github.com/gnames/gnpin/internal/iotesting"
	"github.com/gnames/gnpin/pkg/config"
	"github.com/gnames/gnpin/pkg/errcode"
	"github.com/gnames/gnpin/pkg/schema"
	"github.com/gnames/gnpin/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var drivers = []string{config.DriverSQL, config.DriverGORM}

// openStore opens a store and creates all tables. PostgreSQL tables are
// dropped first so every test starts from an empty database.
func openStore(t *testing.T, cfg *config.Config) store.Store {
	t.Helper()
	ctx := context.Background()

	st, err := iostore.New(ctx, cfg)
	if err != nil && cfg.Database.Engine == config.EnginePostgres {
		t.Skipf("cannot open test database: %v", err)
	}
	require.Nil(t, err)
	t.Cleanup(func() { st.Close() })

	if cfg.Database.Engine == config.EnginePostgres {
		dropAll(t, st)
	}
	require.Nil(t, store.Init(ctx, st))
	return st
}

func dropAll(t *testing.T, st store.Store) {
	ctx := context.Background()
	require.Nil(t, st.Pins().Drop(ctx))
	require.Nil(t, st.Subgroups().Drop(ctx))
	require.Nil(t, st.Sources().Drop(ctx))
	require.Nil(t, st.Supergroups().Drop(ctx))
	require.Nil(t, st.Subspecies().Drop(ctx))
	require.Nil(t, st.Birds().Drop(ctx))
}

func genBirds(n int) []schema.Bird {
	res := make([]schema.Bird, n)
	for i := range n {
		res[i] = schema.Bird{
			EBirdCode:        fmt.Sprintf("bird%04d", i),
			CommonName:       fmt.Sprintf("Bird %d", i),
			FamilyCommonName: schema.Ptr("Testbirds"),
			Order:            "Passeriformes",
			Family:           "Testidae",
			Genus:            "Testus",
			Species:          fmt.Sprintf("species%d", i),
		}
	}
	return res
}

func ostrich() schema.Bird {
	return schema.Bird{
		EBirdCode:        "ostric2",
		CommonName:       "Common Ostrich",
		FamilyCommonName: schema.Ptr("Ostriches"),
		Order:            "Struthioniformes",
		Family:           "Struthionidae",
		Genus:            "Struthio",
		Species:          "camelus",
	}
}

func sortBirds(b []schema.Bird) {
	slices.SortFunc(b, func(x, y schema.Bird) int {
		return strings.Compare(x.EBirdCode, y.EBirdCode)
	})
}

func requireCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	require.NotNil(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, code, gnErr.Code)
}

// contract runs the same checks for any store.
func contract(t *testing.T, newCfg func(t *testing.T, driver string) *config.Config) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			t.Run("create and drop are idempotent", func(t *testing.T) {
				ctx := context.Background()
				st := openStore(t, newCfg(t, driver))
				assert.Equal(t, driver, st.Driver())

				require.Nil(t, store.Init(ctx, st))
				require.Nil(t, st.Supergroups().Drop(ctx))
				require.Nil(t, st.Supergroups().Drop(ctx))

				_, err := st.Supergroups().GetData(ctx)
				requireCode(t, err, errcode.DBSelectError)

				require.Nil(t, st.Supergroups().Create(ctx))
				res, err := st.Supergroups().GetData(ctx)
				require.Nil(t, err)
				assert.Empty(t, res)
			})

			t.Run("duplicate keys are ignored", func(t *testing.T) {
				ctx := context.Background()
				st := openStore(t, newCfg(t, driver))

				bird := ostrich()
				require.Nil(t, st.Birds().AddData(ctx, []schema.Bird{bird}))
				changed := bird
				changed.CommonName = "Ostrich"
				require.Nil(t, st.Birds().AddData(ctx, []schema.Bird{changed, bird}))

				res, err := st.Birds().GetData(ctx)
				require.Nil(t, err)
				require.Len(t, res, 1)
				assert.Equal(t, bird, res[0])
			})

			t.Run("batches are transparent", func(t *testing.T) {
				ctx := context.Background()
				birds := genBirds(250)

				st1 := openStore(t, newCfg(t, driver))
				require.Nil(t, st1.Birds().AddData(ctx, birds))
				res1, err := st1.Birds().GetData(ctx)
				require.Nil(t, err)

				// PostgreSQL tests share one database, so st1 is read first
				st2 := openStore(t, newCfg(t, driver))
				for _, chunk := range [][]schema.Bird{
					birds[:100], birds[100:200], birds[200:],
				} {
					require.Nil(t, st2.Birds().AddData(ctx, chunk))
				}
				res2, err := st2.Birds().GetData(ctx)
				require.Nil(t, err)
				sortBirds(res1)
				sortBirds(res2)
				assert.Len(t, res1, 250)
				assert.Equal(t, res1, res2)
				assert.Equal(t, birds, res1)
			})

			t.Run("duplicates across batch boundary", func(t *testing.T) {
				ctx := context.Background()
				st := openStore(t, newCfg(t, driver))
				birds := genBirds(250)
				require.Nil(t, st.Birds().AddData(ctx, birds[:150]))

				// repeats land in the first, second and third batch
				rows := append(slices.Clone(birds), birds[99], birds[100], birds[249])
				require.Nil(t, st.Birds().AddData(ctx, rows))

				res, err := st.Birds().GetData(ctx)
				require.Nil(t, err)
				assert.Len(t, res, 250)
			})

			t.Run("unknown species of a pin is rejected", func(t *testing.T) {
				ctx := context.Background()
				st := openStore(t, newCfg(t, driver))
				require.Nil(t, st.Sources().AddData(ctx, []schema.Source{{Name: "RSPB"}}))

				err := st.Pins().AddData(ctx, []schema.Pin{
					{SpeciesCode: "nosuch1", SourceName: "RSPB"},
				})
				requireCode(t, err, errcode.DBInsertError)

				res, err := st.Pins().GetData(ctx)
				require.Nil(t, err)
				assert.Empty(t, res)
			})

			t.Run("unknown source of a pin is rejected", func(t *testing.T) {
				ctx := context.Background()
				st := openStore(t, newCfg(t, driver))
				require.Nil(t, st.Birds().AddData(ctx, []schema.Bird{ostrich()}))

				err := st.Pins().AddData(ctx, []schema.Pin{
					{SpeciesCode: "ostric2", SourceName: "Nobody"},
				})
				requireCode(t, err, errcode.DBInsertError)
			})

			t.Run("subgroup requires a parent", func(t *testing.T) {
				ctx := context.Background()
				st := openStore(t, newCfg(t, driver))
				err := st.Subgroups().AddData(ctx, []schema.Subgroup{{Name: "Orphans"}})
				requireCode(t, err, errcode.DBInsertError)

				res, err := st.Subgroups().GetData(ctx)
				require.Nil(t, err)
				assert.Empty(t, res)
			})

			t.Run("source parent is optional", func(t *testing.T) {
				ctx := context.Background()
				st := openStore(t, newCfg(t, driver))
				require.Nil(t, st.Supergroups().AddData(ctx, []schema.Supergroup{
					{Name: "Wildlife Trusts", Website: schema.Ptr("https://wildlifetrusts.org")},
				}))
				sources := []schema.Source{
					{
						Name:           "Norfolk Wildlife Trust",
						Type:           schema.Ptr("Charity"),
						SupergroupName: schema.Ptr("Wildlife Trusts"),
					},
					{Name: "Independent Artist", Type: schema.Ptr("Artist")},
				}
				require.Nil(t, st.Sources().AddData(ctx, sources))

				err := st.Sources().AddData(ctx, []schema.Source{
					{Name: "Lost", SupergroupName: schema.Ptr("Nowhere")},
				})
				requireCode(t, err, errcode.DBInsertError)

				res, err := st.Sources().GetData(ctx)
				require.Nil(t, err)
				slices.SortFunc(res, func(a, b schema.Source) int {
					return strings.Compare(b.Name, a.Name)
				})
				assert.Equal(t, sources, res)
			})

			t.Run("pin ids are assigned by the store", func(t *testing.T) {
				ctx := context.Background()
				st := openStore(t, newCfg(t, driver))
				require.Nil(t, st.Birds().AddData(ctx, []schema.Bird{ostrich()}))
				require.Nil(t, st.Sources().AddData(ctx, []schema.Source{{Name: "RSPB"}}))
				require.Nil(t, st.Subgroups().AddData(ctx, []schema.Subgroup{
					{Name: "RSPB Minsmere", SourceName: "RSPB"},
				}))
				require.Nil(t, st.Subspecies().AddData(ctx, []schema.Subspecies{{
					EBirdCode:      "comost1",
					CommonName:     "Common Ostrich (Northern)",
					SubspeciesName: "camelus/rothschildi",
					SpeciesCode:    "ostric2",
				}}))

				pins := []schema.Pin{
					{ID: 999, SpeciesCode: "ostric2", SourceName: "RSPB"},
					{
						SpeciesCode:    "ostric2",
						SubspeciesCode: schema.Ptr("comost1"),
						SourceName:     "RSPB",
						SubgroupName:   schema.Ptr("RSPB Minsmere"),
					},
				}
				require.Nil(t, st.Pins().AddData(ctx, pins))
				require.Nil(t, st.Pins().AddData(ctx, pins[:1]))
				assert.Equal(t, int64(999), pins[0].ID)

				res, err := st.Pins().GetData(ctx)
				require.Nil(t, err)
				require.Len(t, res, 3)
				slices.SortFunc(res, func(a, b schema.Pin) int {
					return int(a.ID - b.ID)
				})
				assert.Greater(t, res[0].ID, int64(0))
				assert.Less(t, res[0].ID, res[1].ID)
				assert.Less(t, res[1].ID, res[2].ID)
				assert.Less(t, res[2].ID, int64(999))
				assert.Nil(t, res[0].SubspeciesCode)
				assert.Equal(t, "comost1", schema.Deref(res[1].SubspeciesCode))
				assert.Equal(t, "RSPB Minsmere", schema.Deref(res[1].SubgroupName))
			})

			t.Run("large result is not truncated", func(t *testing.T) {
				ctx := context.Background()
				st := openStore(t, newCfg(t, driver))
				require.Nil(t, st.Birds().AddData(ctx, genBirds(1500)))
				res, err := st.Birds().GetData(ctx)
				require.Nil(t, err)
				assert.Len(t, res, 1500)
			})
		})
	}
}

func TestSQLiteContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	contract(t, iotesting.SQLiteConfig)
}

func TestPostgresContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	contract(t, iotesting.PostgresConfig)
}

func TestSQLiteFailedBatchKeepsEarlierBatches(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			st := openStore(t, iotesting.SQLiteConfig(t, driver))
			require.Nil(t, st.Birds().AddData(ctx, []schema.Bird{ostrich()}))

			var ssp []schema.Subspecies
			for i := range 250 {
				species := "ostric2"
				if i == 160 {
					species = "nosuch1"
				}
				ssp = append(ssp, schema.Subspecies{
					EBirdCode:      fmt.Sprintf("ssp%04d", i),
					CommonName:     fmt.Sprintf("Ostrich %d", i),
					SubspeciesName: "camelus",
					SpeciesCode:    species,
				})
			}
			err := st.Subspecies().AddData(ctx, ssp)
			requireCode(t, err, errcode.DBInsertError)

			res, err := st.Subspecies().GetData(ctx)
			require.Nil(t, err)
			assert.Len(t, res, 100)
		})
	}
}

// Replacing the Bird table leaves references of other tables dangling.
func TestSQLiteDropReferencedTable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			st := openStore(t, iotesting.SQLiteConfig(t, driver))
			require.Nil(t, st.Birds().AddData(ctx, []schema.Bird{ostrich()}))
			require.Nil(t, st.Sources().AddData(ctx, []schema.Source{{Name: "RSPB"}}))
			require.Nil(t, st.Pins().AddData(ctx, []schema.Pin{
				{SpeciesCode: "ostric2", SourceName: "RSPB"},
			}))

			require.Nil(t, st.Birds().Drop(ctx))
			require.Nil(t, st.Birds().Create(ctx))
			require.Nil(t, st.Birds().AddData(ctx, genBirds(3)))

			pins, err := st.Pins().GetData(ctx)
			require.Nil(t, err)
			require.Len(t, pins, 1)
			assert.Equal(t, "ostric2", pins[0].SpeciesCode)

			// constraints are still enforced after the replace
			err = st.Pins().AddData(ctx, []schema.Pin{
				{SpeciesCode: "ostric2", SourceName: "RSPB"},
			})
			requireCode(t, err, errcode.DBInsertError)
		})
	}
}

// On PostgreSQL the drop cascades and removes the constraints of pins
// that referenced birds.
func TestPostgresDropReferencedTable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			st := openStore(t, iotesting.PostgresConfig(t, driver))
			require.Nil(t, st.Birds().AddData(ctx, []schema.Bird{ostrich()}))
			require.Nil(t, st.Sources().AddData(ctx, []schema.Source{{Name: "RSPB"}}))
			require.Nil(t, st.Pins().AddData(ctx, []schema.Pin{
				{SpeciesCode: "ostric2", SourceName: "RSPB"},
			}))

			require.Nil(t, st.Birds().Drop(ctx))
			require.Nil(t, st.Birds().Create(ctx))

			err := st.Pins().AddData(ctx, []schema.Pin{
				{SpeciesCode: "nosuch1", SourceName: "RSPB"},
			})
			require.Nil(t, err)

			pins, err := st.Pins().GetData(ctx)
			require.Nil(t, err)
			assert.Len(t, pins, 2)

			// constraints to other tables stay
			err = st.Pins().AddData(ctx, []schema.Pin{
				{SpeciesCode: "ostric2", SourceName: "Nobody"},
			})
			requireCode(t, err, errcode.DBInsertError)
		})
	}
}

func TestNewErrors(t *testing.T) {
	ctx := context.Background()

	cfg := config.New()
	cfg.Database.Driver = "peewee"
	_, err := iostore.New(ctx, cfg)
	requireCode(t, err, errcode.ConfigUnknownDriverError)

	cfg = config.New()
	cfg.Database.Engine = "mysql"
	_, err = iostore.New(ctx, cfg)
	requireCode(t, err, errcode.ConfigUnknownEngineError)
}

func TestSQLiteConnectionError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	cfg := iotesting.SQLiteConfig(t, config.DriverSQL)
	cfg.Update([]config.Option{
		config.OptDatabasePath(cfg.HomeDir + "/no/such/dir/pins.db"),
	})
	_, err := iostore.New(context.Background(), cfg)
	requireCode(t, err, errcode.DBConnectionError)
}
