package service

import "opinfo/internal/operator/models"

func ptr[T any](v T) *T { return &v }

func names(ns ...string) []models.LocalizedName {
	out := make([]models.LocalizedName, len(ns))
	for i, n := range ns {
		out[i] = models.LocalizedName{Name: n}
	}
	return out
}

func testMNO(uuid string, mccmncs []string, operatorNames []string, mvnos ...models.MVNO) models.MNO {
	return models.MNO{
		Data: models.Data{
			UUID:           ptr(uuid),
			MCCMNCs:        mccmncs,
			LocalizedNames: names(operatorNames...),
		},
		MVNOs: mvnos,
	}
}

func testMVNO(uuid string, filters ...models.Filter) models.MVNO {
	return models.MVNO{
		Filters: filters,
		Data:    models.Data{UUID: ptr(uuid)},
	}
}

func nameFilter(re string) models.Filter {
	return models.Filter{Type: models.FilterOperatorName, Regex: re}
}

// resolutionDatabase covers MNO and MVNO selection. Every record carries an
// explicit uuid so assertions can name the winner.
func resolutionDatabase() []models.RecordSet {
	mnos := models.RecordSet{
		Source: "mnos",
		MNOs: []models.MNO{
			testMNO("uuid101", []string{"101001"}, nil),
			testMNO("uuid102", []string{"102001", "102002"}, nil),
			testMNO("uuid103", nil, []string{"name103"}),
			testMNO("uuid104", nil, []string{"name104001", "name104002"}),
			testMNO("uuid106001", []string{"106001"}, []string{"name106001"}),
			testMNO("uuid106002", []string{"106001"}, []string{"name106002"}),
			testMNO("uuid107001", []string{"107001"}, []string{"name107"}),
			testMNO("uuid107002", []string{"107002"}, []string{"name107"}),
			testMNO("uuid108001", []string{"108001"}, []string{"name108001"}),
			testMNO("uuid108002", []string{"108002"}, []string{"name108002"}),
			testMNO("uuid10901", []string{"10901"}, nil),
			testMNO("uuid109002", []string{"109002"}, nil),
			testMNO("uuid110001", []string{"110001"}, nil),
			testMNO("uuid110002", []string{"110002"}, nil),
			testMNO("uuid111001", []string{"111001"}, nil),
		},
	}

	mvnos := models.RecordSet{
		Source: "mvnos",
		MNOs: []models.MNO{
			testMNO("uuid112001", []string{"112001"}, nil,
				testMVNO("uuid112002"),
			),
			testMNO("uuid113001", []string{"113001"}, nil,
				testMVNO("uuid113002", nameFilter("name11300[0-9]")),
			),
			testMNO("uuid114001", []string{"114001"}, nil,
				testMVNO("uuid114002", nameFilter("name[")),
			),
			testMNO("uuid115001", []string{"115001"}, nil,
				testMVNO("uuid115002", nameFilter("name115")),
			),
			testMNO("uuid116001", []string{"116001"}, nil,
				testMVNO("uuid116002", nameFilter("name[a-zA-Z_]*116[0-9]{0,3}")),
			),
			testMNO("uuid117001", []string{"117001"}, nil,
				testMVNO("uuid117002", nameFilter("nameA_.*"), nameFilter(".*_nameB")),
			),
			testMNO("uuid118001", []string{"118001"}, nil,
				testMVNO("uuid118002", models.Filter{Type: models.FilterIMSI, Regex: "1180015432154321"}),
			),
			testMNO("uuid119001", []string{"119001"}, nil,
				testMVNO("uuid119002", models.Filter{Type: models.FilterICCID, Regex: "119123456789"}),
			),
			testMNO("uuid120001", []string{"120001"}, nil,
				testMVNO("uuid120002", models.Filter{Type: models.FilterSID, Regex: "120123"}),
			),
			testMNO("uuid121001", []string{"121001"}, nil,
				testMVNO("uuid121003", nameFilter("name121003")),
				testMVNO("uuid121004", models.Filter{Type: models.FilterIMSI, Regex: "1210045432154321"}),
				testMVNO("uuid121005", models.Filter{Type: models.FilterICCID, Regex: "121005123456789"}),
				testMVNO("uuid121006",
					nameFilter("name121006"),
					models.Filter{Type: models.FilterICCID, Regex: "121006123456789"},
				),
			),
			testMNO("uuid122001", []string{"122001"}, nil,
				testMVNO("uuid122002", nameFilter("brandA|brandB")),
			),
		},
		IMVNOs: []models.MVNO{testMVNO("uuid199001")},
	}

	return []models.RecordSet{mnos, mvnos}
}

// dataDatabase has one fully populated MNO, an MVNO overriding every field
// and an MVNO that only names itself.
func dataDatabase() []models.RecordSet {
	mno := models.MNO{
		Data: models.Data{
			UUID:            ptr("uuid200001"),
			Country:         ptr("us"),
			RequiresRoaming: ptr(true),
			ActivationCode:  ptr("open sesame"),
			MCCMNCs:         []string{"200001", "200002"},
			LocalizedNames: []models.LocalizedName{
				{Name: "name200001", Language: "en"},
				{Name: "name200002"},
			},
			APNs: []models.APN{{
				APN:            "test@test.com",
				Username:       "testuser",
				Password:       "is_public_boohoohoo",
				LocalizedNames: []models.LocalizedName{{Name: "name200003", Language: "hi"}},
			}},
			OnlinePortals: []models.OnlinePortal{
				{URL: "some@random.com", Method: models.PortalPOST, PostData: "random_data"},
			},
			SIDs: []string{"200123", "200234"},
		},
		MVNOs: []models.MVNO{
			{
				Filters: []models.Filter{nameFilter("name200101")},
				Data: models.Data{
					UUID:            ptr("uuid200101"),
					Country:         ptr("ca"),
					RequiresRoaming: ptr(false),
					ActivationCode:  ptr("khul ja sim sim"),
					MCCMNCs:         []string{"200001", "200102"},
					LocalizedNames: []models.LocalizedName{
						{Name: "name200101", Language: "en"},
						{Name: "name200102"},
					},
					APNs: []models.APN{{
						APN:      "test2@test.com",
						Username: "testuser2",
						Password: "is_public_boohoohoo_too",
					}},
					OnlinePortals: []models.OnlinePortal{
						{URL: "someother@random.com", Method: models.PortalGET},
					},
					SIDs: []string{"200345"},
				},
			},
			{
				Filters: []models.Filter{nameFilter("name200201")},
				Data:    models.Data{UUID: ptr("uuid200201")},
			},
		},
	}
	return []models.RecordSet{{Source: "data", MNOs: []models.MNO{mno}}}
}
