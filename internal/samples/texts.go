package samples

// Language identifies one of the reference passages.
type Language string

const (
	German  Language = "german"
	French  Language = "french"
	Italian Language = "italian"
	Spanish Language = "spanish"
)

type source struct {
	title       string
	attribution string
	text        string
}

var sources = map[Language]source{
	German: {
		title:       "German sample",
		attribution: "Goethe, Faust I (public domain)",
		text: `Habe nun, ach! Philosophie, Juristerei und Medizin, und leider auch Theologie durchaus studiert, mit heissem Bemuehn. Da steh ich nun, ich armer Tor! Und bin so klug als wie zuvor; heisse Magister, heisse Doktor gar und ziehe schon an die zehen Jahr herauf, herab und quer und krumm meine Schueler an der Nase herum. Und sehe, dass wir nichts wissen koennen! Das will mir schier das Herz verbrennen. Zwar bin ich gescheiter als all die Laffen, Doktoren, Magister, Schreiber und Pfaffen; mich plagen keine Skrupel noch Zweifel, fuerchte mich weder vor Hoelle noch Teufel. Dafuer ist mir auch alle Freud entrissen, bilde mir nicht ein, was Rechts zu wissen, bilde mir nicht ein, ich koennte was lehren, die Menschen zu bessern und zu bekehren.`,
	},
	French: {
		title:       "French sample",
		attribution: "Balzac, Le Pere Goriot (public domain)",
		text: `Madame Vauquer, nee de Conflans, est une vieille femme qui, depuis quarante ans, tient a Paris une pension bourgeoise situee rue Neuve-Sainte-Genevieve, entre le Quartier Latin et le faubourg Saint-Marceau. Cette maison, connue sous le nom de Maison Vauquer, admet des hommes et des femmes, des jeunes gens et des vieillards, sans que jamais la plus equitable morale ait ete compromise. Mais c'est aussi l'une des pensions ou il s'est fait de ces petits drames que la vie quotidienne couve et broie dans les grandes villes, et auxquels personne ne prend part, parce qu'ils se passent en silence et en secret. La salle a manger, froide, nue, avec ses chaises de paille et ses tables de bois, a des figures de pensionnaires qui racontent la misere cachee, la vanite degoutee, l'espoir obstine ou l'ambition usee.`,
	},
	Italian: {
		title:       "Italian sample",
		attribution: "Manzoni, I Promessi Sposi (public domain)",
		text: `Quel ramo del lago di Como, che volge a mezzogiorno, tra due catene non interrotte di monti, tutto a seni e a golfi, a seconda dello sporgere e del rientrare di quelli, vien, quasi a un tratto, a ristringersi, e a prender corso e figura di fiume, tra un promontorio a destra, e un'ampia costiera dall'altra parte; e il ponte, che ivi congiunge le due rive, pare che renda ancor piu sensibile all'occhio questa trasformazione, e segni il punto in cui il lago cessa, e l'Adda rincomincia, per ripigliar poi nome di lago dove le rive, allontanandosi di nuovo, lasciano l'acqua distendersi e rallentarsi in nuovi golfi e in nuovi seni.`,
	},
	Spanish: {
		title:       "Spanish sample",
		attribution: "Cervantes, Don Quijote (public domain)",
		text: `En un lugar de la Mancha, de cuyo nombre no quiero acordarme, no ha mucho tiempo que vivi un hidalgo de los de lanza en astillero, adarga antigua, rocin flaco y galgo corredor. Una olla de algo mas vaca que carnero, salpicon las mas noches, duelos y quebrantos los sabados, lentejas los viernes, algun palomino de anadidura los domingos, consumian las tres partes de su hacienda. El resto della concluian sayo de velarte, calzas de velludo para las fiestas con sus pantuflos de lo mismo, y los dias de entresemana se honraba con su vellori de lo mas fino. Tenia en su casa una ama que pasaba de los cuarenta, y una sobrina que no llegaba a los veinte, y un mozo de campo y plaza, que asi ensillaba el rocin como tomaba la podadera.`,
	},
}
