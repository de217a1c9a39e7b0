package schema

// Enum value sets. These mirror the symbolic values the game client
// understands; the editor never invents new ones.
var (
	itemTypes       = []string{"KeyItem", "Material", "Consumable", "CostumeUnlock"}
	rarities        = []string{"Star1", "Star2", "Star3", "Star4", "Star5", "Star6"}
	consumableTypes = []string{"None", "RecoverSP", "BoostIncome", "InstantMoney", "RecoverLensBattery"}
	lensFilterModes = []string{"Normal", "NightVision", "Thermo", "XRay", "Mosaic"}

	upgradeTypes = []string{
		"Click_FlatAdd", "Click_PercentAdd",
		"Income_FlatAdd", "Income_PercentAdd",
		"Critical_ChanceAdd", "Critical_PowerAdd",
		"SP_ChargeAdd", "Fever_PowerAdd",
	}
	upgradeCategories = []string{"Click", "Income", "Critical", "Skill", "Special"}
	currencyTypes     = []string{"LMD", "Certificate", "Originium"}

	companyTraits = []string{"None", "TechInnovation", "Logistics", "Military", "Trading", "Arts"}
	stockSectors  = []string{"Tech", "Military", "Logistics", "Finance", "Entertainment", "Resource"}

	prestigeBonusTypes = []string{
		"ClickEfficiency", "AutoIncome",
		"CriticalRate", "CriticalPower",
		"SPChargeSpeed", "FeverPower",
		"SellPriceBonus", "GachaCostReduction",
		"UpgradeCostReduction", "DividendBonus",
	}

	eventSeverities   = []string{"Minor", "Normal", "Major", "Critical"}
	eventTriggerTypes = []string{
		"None", "MoneyReached", "ClickCount", "UpgradePurchased",
		"ItemObtained", "TimeElapsed", "AffectionLevel", "StockOwned",
	}
	menuTypes = []string{"Shop", "Inventory", "Gacha", "Market", "Settings", "Operator"}
)

// Nested sub-schemas shared by the collection schemas.
var (
	lensSpecsFields = []FieldSpec{
		{Name: "is_lens", Alias: "isLens", Type: TypeBool, Default: false},
		{Name: "view_radius", Alias: "viewRadius", Type: TypeFloat, Default: 100.0},
		{Name: "max_duration", Alias: "maxDuration", Type: TypeFloat, Default: 30.0},
		{Name: "penetrate_level", Alias: "penetrateLevel", Type: TypeInt, Default: 1, Min: fp(0), Max: fp(5)},
		{Name: "filter_mode", Alias: "filterMode", Type: TypeEnum, Enum: lensFilterModes, Default: "Normal"},
		{Name: "lens_mask", Alias: "lensMask", Type: TypeString},
		{Name: "stability", Type: TypeFloat, Default: 1.0},
	}

	itemCostFields = []FieldSpec{
		{Name: "item_id", Alias: "itemId", Type: TypeString, Required: true},
		{Name: "amount", Type: TypeInt, Default: 1},
	}

	gachaPoolEntryFields = []FieldSpec{
		{Name: "item_id", Alias: "itemId", Type: TypeString, Required: true},
		{Name: "weight", Type: TypeFloat, Default: 1.0, Min: fp(0.01), Max: fp(100.0)},
		{Name: "is_pickup", Alias: "isPickup", Type: TypeBool, Default: false},
		{Name: "stock_count", Alias: "stockCount", Type: TypeInt, Default: 0},
	}

	holdingBonusFields = []FieldSpec{
		{Name: "threshold", Type: TypeFloat, Default: 0.0},
		{Name: "bonus_type", Alias: "bonusType", Type: TypeString, Default: "None"},
		{Name: "bonus_value", Alias: "bonusValue", Type: TypeFloat, Default: 0.0},
	}

	stockEventTriggerFields = []FieldSpec{
		{Name: "event_id", Alias: "eventId", Type: TypeString, Required: true},
		{Name: "trigger_condition", Alias: "triggerCondition", Type: TypeString, Default: ""},
		{Name: "price_impact", Alias: "priceImpact", Type: TypeFloat, Default: 0.0},
	}

	ownershipBonusFields = []FieldSpec{
		{Name: "threshold", Type: TypeFloat, Default: 0.0},
		{Name: "bonus_type", Alias: "bonusType", Type: TypeString, Default: "None"},
		{Name: "bonus_value", Alias: "bonusValue", Type: TypeFloat, Default: 0.0},
		{Name: "description", Type: TypeString, Default: ""},
	}

	prestigeBonusFields = []FieldSpec{
		{Name: "bonus_type", Alias: "bonusType", Type: TypeEnum, Enum: prestigeBonusTypes, Required: true},
		{Name: "value_per_level", Alias: "valuePerLevel", Type: TypeFloat, Default: 0.05},
		{Name: "description", Type: TypeString, Default: ""},
	}

	sectorImpactFields = []FieldSpec{
		{Name: "sector", Type: TypeEnum, Enum: stockSectors, Required: true},
		{Name: "impact", Type: TypeFloat, Default: 0.0, Min: fp(-0.5), Max: fp(0.5)},
	}

	companyImpactFields = []FieldSpec{
		{Name: "company_id", Alias: "companyId", Type: TypeString, Required: true},
		{Name: "impact", Type: TypeFloat, Default: 0.0, Min: fp(-0.5), Max: fp(0.5)},
	}

	itemRewardFields = []FieldSpec{
		{Name: "item_id", Alias: "itemId", Type: TypeString, Required: true},
		{Name: "amount", Type: TypeInt, Default: 1},
	}
)

var itemSchema = &Schema{
	Kind:    KindItems,
	IDField: "id",
	Fields: []FieldSpec{
		{Name: "id", Type: TypeString, Required: true},
		{Name: "display_name", Alias: "displayName", Type: TypeString, Required: true},
		{Name: "description", Type: TypeString, Default: ""},
		{Name: "icon", Type: TypeString},

		{Name: "type", Type: TypeEnum, Enum: itemTypes, Required: true},
		{Name: "rarity", Type: TypeEnum, Enum: rarities, Required: true},
		{Name: "sort_order", Alias: "sortOrder", Type: TypeInt, Default: 0},
		{Name: "max_stack", Alias: "maxStack", Type: TypeInt, Default: -1},
		{Name: "sell_price", Alias: "sellPrice", Type: TypeInt, Default: 0},

		{Name: "use_sound", Alias: "useSound", Type: TypeString},
		{Name: "lens_specs", Alias: "lensSpecs", Type: TypeObject, Elem: lensSpecsFields},

		{Name: "use_effect", Alias: "useEffect", Type: TypeEnum, Enum: consumableTypes, Default: "None"},
		{Name: "effect_value", Alias: "effectValue", Type: TypeFloat, Default: 0.0},
		{Name: "effect_duration", Alias: "effectDuration", Type: TypeFloat, Default: 0.0},

		{Name: "convert_to_item_id", Alias: "convertToItemId", Type: TypeString},
		{Name: "convert_amount", Alias: "convertAmount", Type: TypeInt, Default: 1},

		{Name: "target_character_id", Alias: "targetCharacterId", Type: TypeString},
		{Name: "target_costume_index", Alias: "targetCostumeIndex", Type: TypeInt, Default: 1},

		{Name: "effect_format", Alias: "effectFormat", Type: TypeString, Default: "+{0}"},
		{Name: "is_percent_display", Alias: "isPercentDisplay", Type: TypeBool, Default: false},
		{Name: "category_icon", Alias: "categoryIcon", Type: TypeString, Default: ""},
		{Name: "is_special", Alias: "isSpecial", Type: TypeBool, Default: false},
	},
}

var upgradeSchema = &Schema{
	Kind:    KindUpgrades,
	IDField: "id",
	Fields: []FieldSpec{
		{Name: "id", Type: TypeString, Required: true},
		{Name: "display_name", Alias: "displayName", Type: TypeString, Required: true},
		{Name: "description", Type: TypeString, Default: ""},
		{Name: "icon", Type: TypeString},

		{Name: "upgrade_type", Alias: "upgradeType", Type: TypeEnum, Enum: upgradeTypes, Required: true},
		{Name: "category", Type: TypeEnum, Enum: upgradeCategories, Required: true},
		{Name: "effect_value", Alias: "effectValue", Type: TypeFloat, Default: 1.0},
		{Name: "max_level", Alias: "maxLevel", Type: TypeInt, Default: 10},

		{Name: "currency_type", Alias: "currencyType", Type: TypeEnum, Enum: currencyTypes, Default: "LMD"},
		{Name: "base_cost", Alias: "baseCost", Type: TypeFloat, Default: 100.0},
		{Name: "cost_multiplier", Alias: "costMultiplier", Type: TypeFloat, Default: 1.15},

		{Name: "required_materials", Alias: "requiredMaterials", Type: TypeObjectList, Elem: itemCostFields, Default: []any{}},
		{Name: "material_scaling", Alias: "materialScaling", Type: TypeFloat, Default: 1.0},

		{Name: "required_unlock_item_id", Alias: "requiredUnlockItemId", Type: TypeString},
		{Name: "prerequisite_upgrade_id", Alias: "prerequisiteUpgradeId", Type: TypeString},
		{Name: "prerequisite_level", Alias: "prerequisiteLevel", Type: TypeInt, Default: 1},

		{Name: "related_stock_id", Alias: "relatedStockId", Type: TypeString},
		{Name: "scale_with_holding", Alias: "scaleWithHolding", Type: TypeBool, Default: false},
		{Name: "max_holding_multiplier", Alias: "maxHoldingMultiplier", Type: TypeFloat, Default: 2.0},

		{Name: "sort_order", Alias: "sortOrder", Type: TypeInt, Default: 0},
		{Name: "effect_format", Alias: "effectFormat", Type: TypeString, Default: "+{0}"},
		{Name: "is_percent_display", Alias: "isPercentDisplay", Type: TypeBool, Default: false},
		{Name: "category_icon", Alias: "categoryIcon", Type: TypeString, Default: ""},
		{Name: "is_special", Alias: "isSpecial", Type: TypeBool, Default: false},
	},
}

var gachaBannerSchema = &Schema{
	Kind:    KindGachaBanners,
	IDField: "bannerId",
	Fields: []FieldSpec{
		{Name: "banner_id", Alias: "bannerId", Type: TypeString, Required: true},
		{Name: "banner_name", Alias: "bannerName", Type: TypeString, Required: true},
		{Name: "description", Type: TypeString, Default: ""},
		{Name: "banner_sprite", Alias: "bannerSprite", Type: TypeString},
		{Name: "is_limited", Alias: "isLimited", Type: TypeBool, Default: false},

		{Name: "currency_type", Alias: "currencyType", Type: TypeEnum, Enum: currencyTypes, Default: "Certificate"},
		{Name: "cost_single", Alias: "costSingle", Type: TypeFloat, Default: 600.0},
		{Name: "cost_ten", Alias: "costTen", Type: TypeFloat, Default: 6000.0},

		{Name: "has_pity", Alias: "hasPity", Type: TypeBool, Default: false},
		{Name: "pity_count", Alias: "pityCount", Type: TypeInt, Default: 50},
		{Name: "soft_pity_start", Alias: "softPityStart", Type: TypeInt, Default: 40},

		{Name: "pool", Type: TypeObjectList, Elem: gachaPoolEntryFields, Default: []any{}},

		{Name: "pickup_item_ids", Alias: "pickupItemIds", Type: TypeStringList, Default: []any{}},
		{Name: "pickup_rate_boost", Alias: "pickupRateBoost", Type: TypeFloat, Default: 0.5, Min: fp(0.0), Max: fp(1.0)},

		{Name: "starts_locked", Alias: "startsLocked", Type: TypeBool, Default: false},
		{Name: "prerequisite_banner_id", Alias: "prerequisiteBannerId", Type: TypeString},
		{Name: "required_unlock_item_id", Alias: "requiredUnlockItemId", Type: TypeString},
	},
}

var companySchema = &Schema{
	Kind:    KindCompanies,
	IDField: "id",
	Fields: []FieldSpec{
		{Name: "id", Type: TypeString, Required: true},
		{Name: "display_name", Alias: "displayName", Type: TypeString, Required: true},
		{Name: "description", Type: TypeString, Default: ""},
		{Name: "logo", Type: TypeString},

		{Name: "chart_color", Alias: "chartColor", Type: TypeString, Default: "#00FF00"},
		{Name: "theme_color", Alias: "themeColor", Type: TypeString, Default: "#FFFFFF"},
		{Name: "sort_order", Alias: "sortOrder", Type: TypeInt, Default: 0},

		{Name: "trait_type", Alias: "traitType", Type: TypeEnum, Enum: companyTraits, Default: "None"},
		{Name: "trait_multiplier", Alias: "traitMultiplier", Type: TypeFloat, Default: 1.0},

		{Name: "initial_price", Alias: "initialPrice", Type: TypeFloat, Default: 1000.0},
		{Name: "min_price", Alias: "minPrice", Type: TypeFloat, Default: 10.0},
		{Name: "max_price", Alias: "maxPrice", Type: TypeFloat, Default: 0.0},

		{Name: "volatility", Type: TypeFloat, Default: 0.1, Min: fp(0.01), Max: fp(0.5)},
		{Name: "drift", Type: TypeFloat, Default: 0.02, Min: fp(-0.1), Max: fp(0.2)},
		{Name: "jump_probability", Alias: "jumpProbability", Type: TypeFloat, Default: 0.01, Min: fp(0.0), Max: fp(0.1)},
		{Name: "jump_intensity", Alias: "jumpIntensity", Type: TypeFloat, Default: 0.2, Min: fp(0.1), Max: fp(0.5)},

		{Name: "transaction_fee", Alias: "transactionFee", Type: TypeFloat, Default: 0.01, Min: fp(0.0), Max: fp(0.05)},
		{Name: "sector", Type: TypeEnum, Enum: stockSectors, Default: "Tech"},
		{Name: "total_shares", Alias: "totalShares", Type: TypeInt, Default: 1000000},

		{Name: "dividend_rate", Alias: "dividendRate", Type: TypeFloat, Default: 0.0, Min: fp(0.0), Max: fp(0.1)},
		{Name: "dividend_interval_seconds", Alias: "dividendIntervalSeconds", Type: TypeInt, Default: 0},

		{Name: "holding_bonuses", Alias: "holdingBonuses", Type: TypeObjectList, Elem: holdingBonusFields, Default: []any{}},

		{Name: "unlock_key_item_id", Alias: "unlockKeyItemId", Type: TypeString},

		{Name: "stock_events", Alias: "stockEvents", Type: TypeObjectList, Elem: stockEventTriggerFields, Default: []any{}},

		{Name: "is_player_company", Alias: "isPlayerCompany", Type: TypeBool, Default: false},
		{Name: "can_sell", Alias: "canSell", Type: TypeBool, Default: true},
		{Name: "buyback_penalty", Alias: "buybackPenalty", Type: TypeFloat, Default: 0.0, Min: fp(0.0), Max: fp(0.5)},

		{Name: "ownership_bonuses", Alias: "ownershipBonuses", Type: TypeObjectList, Elem: ownershipBonusFields, Default: []any{}},

		{Name: "active_click_bonus_rate", Alias: "activeClickBonusRate", Type: TypeFloat, Default: 0.02, Min: fp(0.0), Max: fp(0.1)},
		{Name: "idle_decay_rate", Alias: "idleDecayRate", Type: TypeFloat, Default: 0.005, Min: fp(0.0), Max: fp(0.05)},
		{Name: "active_click_threshold", Alias: "activeClickThreshold", Type: TypeInt, Default: 10},
		{Name: "shareholder_meeting_interval", Alias: "shareholderMeetingInterval", Type: TypeInt, Default: 600},
	},
}

var stockSchema = &Schema{
	Kind:    KindStocks,
	IDField: "stockId",
	Fields: []FieldSpec{
		{Name: "stock_id", Alias: "stockId", Type: TypeString, Required: true},
		{Name: "company_id", Alias: "companyId", Type: TypeString, Required: true},
		{Name: "stock_id_override", Alias: "stockIdOverride", Type: TypeString},
	},
}

var stockPrestigeSchema = &Schema{
	Kind:    KindStockPrestiges,
	IDField: "id",
	Fields: []FieldSpec{
		{Name: "id", Type: TypeString, Required: true},
		{Name: "target_stock_id", Alias: "targetStockId", Type: TypeString, Required: true},

		{Name: "shares_multiplier", Alias: "sharesMultiplier", Type: TypeFloat, Default: 1.5, Min: fp(1.1), Max: fp(3.0)},
		{Name: "max_prestige_level", Alias: "maxPrestigeLevel", Type: TypeInt, Default: 0},

		{Name: "prestige_bonuses", Alias: "prestigeBonuses", Type: TypeObjectList, Elem: prestigeBonusFields, Default: []any{}},

		{Name: "acquisition_message", Alias: "acquisitionMessage", Type: TypeString, Default: "{0}の買収が完了しました！"},
		{Name: "acquisition_sound", Alias: "acquisitionSound", Type: TypeString},
	},
}

var marketEventSchema = &Schema{
	Kind:    KindMarketEvents,
	IDField: "eventId",
	Fields: []FieldSpec{
		{Name: "event_id", Alias: "eventId", Type: TypeString, Required: true},
		{Name: "event_name", Alias: "eventName", Type: TypeString, Required: true},
		{Name: "description", Type: TypeString, Default: ""},
		{Name: "icon", Type: TypeString},

		{Name: "global_impact", Alias: "globalImpact", Type: TypeFloat, Default: 0.0, Min: fp(-0.5), Max: fp(0.5)},
		{Name: "sector_impacts", Alias: "sectorImpacts", Type: TypeObjectList, Elem: sectorImpactFields, Default: []any{}},
		{Name: "company_impacts", Alias: "companyImpacts", Type: TypeObjectList, Elem: companyImpactFields, Default: []any{}},

		{Name: "daily_probability", Alias: "dailyProbability", Type: TypeFloat, Default: 0.05, Min: fp(0.0), Max: fp(1.0)},
		{Name: "duration_seconds", Alias: "durationSeconds", Type: TypeFloat, Default: 600.0},
		{Name: "severity", Type: TypeEnum, Enum: eventSeverities, Default: "Normal"},
	},
}

var gameEventSchema = &Schema{
	Kind:    KindGameEvents,
	IDField: "eventId",
	Fields: []FieldSpec{
		{Name: "event_id", Alias: "eventId", Type: TypeString, Required: true},
		{Name: "event_name", Alias: "eventName", Type: TypeString, Required: true},
		{Name: "description", Type: TypeString, Default: ""},

		{Name: "trigger_type", Alias: "triggerType", Type: TypeEnum, Enum: eventTriggerTypes, Default: "None"},
		{Name: "trigger_value", Alias: "triggerValue", Type: TypeFloat, Default: 0.0},
		{Name: "require_id", Alias: "requireId", Type: TypeString},
		{Name: "prerequisite_event_id", Alias: "prerequisiteEventId", Type: TypeString},

		{Name: "one_time_only", Alias: "oneTimeOnly", Type: TypeBool, Default: true},
		{Name: "pause_game", Alias: "pauseGame", Type: TypeBool, Default: false},
		{Name: "priority", Type: TypeInt, Default: 0},

		{Name: "event_prefab", Alias: "eventPrefab", Type: TypeString},
		{Name: "notification_text", Alias: "notificationText", Type: TypeString, Default: ""},
		{Name: "notification_icon", Alias: "notificationIcon", Type: TypeString},

		{Name: "unlock_menu", Alias: "unlockMenu", Type: TypeEnum, Enum: menuTypes},
		{Name: "reward_money", Alias: "rewardMoney", Type: TypeFloat, Default: 0.0},
		{Name: "reward_certificates", Alias: "rewardCertificates", Type: TypeInt, Default: 0},
		{Name: "reward_items", Alias: "rewardItems", Type: TypeObjectList, Elem: itemRewardFields, Default: []any{}},
	},
}

// registry maps each collection kind to its schema. Resolved once at
// package init; never mutated afterwards.
var registry = map[Kind]*Schema{
	KindItems:          itemSchema,
	KindUpgrades:       upgradeSchema,
	KindGachaBanners:   gachaBannerSchema,
	KindCompanies:      companySchema,
	KindStocks:         stockSchema,
	KindStockPrestiges: stockPrestigeSchema,
	KindMarketEvents:   marketEventSchema,
	KindGameEvents:     gameEventSchema,
}
