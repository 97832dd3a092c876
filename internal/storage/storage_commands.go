package storage

import "slices"

func (s *Storage) DisableGroup(guildID, group string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	if slices.Contains(record.DisabledGroups, group) {
		return nil
	}
	record.DisabledGroups = append(record.DisabledGroups, group)
	s.ds.Add(guildKey(guildID), record)
	return nil
}

func (s *Storage) EnableGroup(guildID, group string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.DisabledGroups = slices.DeleteFunc(record.DisabledGroups, func(g string) bool {
		return g == group
	})
	s.ds.Add(guildKey(guildID), record)
	return nil
}

func (s *Storage) IsGroupDisabled(guildID, group string) (bool, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return false, err
	}
	return slices.Contains(record.DisabledGroups, group), nil
}

func (s *Storage) GetDisabledGroups(guildID string) ([]string, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.DisabledGroups, nil
}
