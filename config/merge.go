package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Version != "" {
		result.Version = override.Version
	}
	if override.Manager != "" {
		result.Manager = override.Manager
	}

	if override.Templates != nil {
		if result.Templates == nil {
			result.Templates = &TemplatesConfig{}
		}
		merged := *result.Templates
		if override.Templates.Dir != "" {
			merged.Dir = override.Templates.Dir
		}
		result.Templates = &merged
	}

	if override.VCS != nil {
		if result.VCS == nil {
			result.VCS = &VCSConfig{}
		}
		merged := *result.VCS
		if override.VCS.Init != nil {
			merged.Init = override.VCS.Init
		}
		if override.VCS.CommitMessage != "" {
			merged.CommitMessage = override.VCS.CommitMessage
		}
		result.VCS = &merged
	}

	// Merge extensions into a fresh map; result shares the base's map
	// after the struct copy and must not mutate it
	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(result.Extensions))
		for key, value := range result.Extensions {
			merged[key] = value
		}
		result.Extensions = merged
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseValue, exists := result.Extensions[key]; exists {
				if baseMap, baseOk := baseValue.(map[string]interface{}); baseOk {
					if overrideMap, overrideOk := value.(map[string]interface{}); overrideOk {
						mergedMap := make(map[string]interface{})
						for k, v := range baseMap {
							mergedMap[k] = v
						}
						for k, v := range overrideMap {
							mergedMap[k] = v
						}
						result.Extensions[key] = mergedMap
						continue
					}
				}
			}
			// Otherwise just replace
			result.Extensions[key] = value
		}
	}

	return &result
}
