package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/and161185/medhub/internal/model"
)

func naira(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Fixture returns the demo catalog bundled with the client.
func Fixture() *Static {
	doctors := []model.Doctor{
		{
			ID: "doc-1", Name: "Dr. Adaeze Okafor", Specialty: "Cardiologist",
			Rating: 4.9, Reviews: 312, Experience: 14,
			Avatar:       "https://i.pravatar.cc/150?img=32",
			Availability: model.Available, ConsultationFee: naira(15000),
			Languages: []string{"English", "Igbo"},
			Bio:       "Consultant cardiologist focused on preventive heart care.",
		},
		{
			ID: "doc-2", Name: "Dr. Emeka Nwosu", Specialty: "General Practitioner",
			Rating: 4.7, Reviews: 540, Experience: 9,
			Avatar:       "https://i.pravatar.cc/150?img=12",
			Availability: model.Available, ConsultationFee: naira(8000),
			Languages: []string{"English", "Yoruba"},
		},
		{
			ID: "doc-3", Name: "Dr. Halima Bello", Specialty: "Pediatrician",
			Rating: 4.8, Reviews: 221, Experience: 11,
			Avatar:       "https://i.pravatar.cc/150?img=45",
			Availability: model.Busy, ConsultationFee: naira(12000),
			Languages: []string{"English", "Hausa"},
		},
		{
			ID: "doc-4", Name: "Dr. Tunde Bakare", Specialty: "Dermatologist",
			Rating: 4.6, Reviews: 178, Experience: 7,
			Avatar:       "https://i.pravatar.cc/150?img=15",
			Availability: model.Offline, ConsultationFee: naira(10000),
			Languages: []string{"English"},
		},
	}

	medicines := []model.Medicine{
		{
			ID: "med-1", Name: "Paracetamol 500mg", Description: "Pain and fever relief",
			Price: naira(500), Category: "Pain Relief", Manufacturer: "Emzor",
			InStock: true, Dosage: "1-2 tablets every 6 hours",
		},
		{
			ID: "med-2", Name: "Amoxicillin 500mg", Description: "Broad-spectrum antibiotic",
			Price: naira(1200), Category: "Antibiotics", Manufacturer: "Fidson",
			RequiresPrescription: true, InStock: true, Dosage: "1 capsule every 8 hours",
		},
		{
			ID: "med-3", Name: "Vitamin C 1000mg", Description: "Immune support",
			Price: naira(2500), Category: "Supplements", Manufacturer: "Swiss Pharma",
			InStock: true,
		},
		{
			ID: "med-4", Name: "Artemether/Lumefantrine", Description: "Malaria treatment",
			Price: naira(3200), Category: "Antimalarials", Manufacturer: "Novartis",
			RequiresPrescription: true, InStock: false,
		},
	}

	labTests := []model.LabTest{
		{
			ID: "lab-1", Name: "Full Blood Count", Description: "Complete blood cell analysis",
			Price: naira(8000), EstimatedTime: "24 hours", Category: "Hematology",
		},
		{
			ID: "lab-2", Name: "Lipid Profile", Description: "Cholesterol and triglycerides",
			Price: naira(12000), PreparationRequired: true,
			PreparationInstructions: "Fast for 10-12 hours before the test",
			EstimatedTime:           "48 hours", Category: "Chemistry",
		},
		{
			ID: "lab-3", Name: "Malaria Parasite Test", Description: "Blood film for malaria",
			Price: naira(3000), EstimatedTime: "2 hours", Category: "Parasitology",
		},
	}

	mealPlans := []model.MealPlan{
		{
			ID: "plan-1", Name: "Heart Healthy", Description: "Low sodium, high fibre",
			Calories: 1800, Protein: 90, Carbs: 200, Fats: 60, Duration: 7, Price: naira(25000),
			Meals: []model.Meal{
				{ID: "meal-1", Name: "Oat porridge with berries", Calories: 350, MealType: model.Breakfast, Ingredients: []string{"oats", "berries", "milk"}},
				{ID: "meal-2", Name: "Grilled fish and vegetables", Calories: 550, MealType: model.Lunch, Ingredients: []string{"tilapia", "spinach", "peppers"}},
				{ID: "meal-3", Name: "Moi moi with salad", Calories: 450, MealType: model.Dinner, Ingredients: []string{"beans", "lettuce", "tomato"}},
			},
		},
		{
			ID: "plan-2", Name: "Diabetes Control", Description: "Low glycaemic index meals",
			Calories: 1600, Protein: 100, Carbs: 150, Fats: 55, Duration: 14, Price: naira(40000),
			Meals: []model.Meal{
				{ID: "meal-4", Name: "Boiled eggs and avocado", Calories: 300, MealType: model.Breakfast, Ingredients: []string{"eggs", "avocado"}},
				{ID: "meal-5", Name: "Unripe plantain and vegetable soup", Calories: 500, MealType: model.Lunch, Ingredients: []string{"plantain", "ugu", "fish"}},
				{ID: "meal-6", Name: "Groundnuts", Calories: 180, MealType: model.Snack, Ingredients: []string{"groundnuts"}},
			},
		},
	}

	return NewStatic(doctors, medicines, labTests, mealPlans)
}
