package memory

import "github.com/riskibarqy/gameday-rotation/internal/domain/group"

const (
	GroupIDSundayFive   = "grp-sunday-five"
	GroupIDOfficeLeague = "grp-office-league"
)

func SeedGroups() []group.Group {
	return []group.Group{
		{
			ID:                GroupIDSundayFive,
			Name:              "Sunday Five-a-side",
			MaxTeams:          4,
			MaxPlayersPerTeam: 5,
			Timezone:          "Asia/Jakarta",
		},
		{
			ID:                GroupIDOfficeLeague,
			Name:              "Office League",
			MaxTeams:          3,
			MaxPlayersPerTeam: 6,
			Timezone:          "UTC",
		},
	}
}

func SeedMemberships() []group.Membership {
	return []group.Membership{
		{ID: "mem-admin", GroupID: GroupIDSundayFive, UserID: "user-admin", Name: "Rizki", Role: group.RoleAdmin, Approved: true},
		{ID: "mem-01", GroupID: GroupIDSundayFive, UserID: "user-01", Name: "Bima", Role: group.RoleMember, Approved: true},
		{ID: "mem-02", GroupID: GroupIDSundayFive, UserID: "user-02", Name: "Dimas", Role: group.RoleMember, Approved: true},
		{ID: "mem-03", GroupID: GroupIDSundayFive, UserID: "user-03", Name: "Fajar", Role: group.RoleMember, Approved: true},
		{ID: "mem-04", GroupID: GroupIDSundayFive, UserID: "user-04", Name: "Gilang", Role: group.RoleMember, Approved: true},
		{ID: "mem-05", GroupID: GroupIDSundayFive, UserID: "user-05", Name: "Hendra", Role: group.RoleMember, Approved: true},
		{ID: "mem-06", GroupID: GroupIDSundayFive, UserID: "user-06", Name: "Iqbal", Role: group.RoleMember, Approved: false},
		{ID: "mem-office-admin", GroupID: GroupIDOfficeLeague, UserID: "user-admin", Name: "Rizki", Role: group.RoleAdmin, Approved: true},
	}
}
